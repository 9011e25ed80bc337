package utils

import "personas-web/internal/pkg/dto/requests"

func BuildCreatePersonaVariables(form requests.PersonaForm) requests.CreatePersonaVariables {
	return requests.CreatePersonaVariables{
		Nombre:          form.Nombre,
		Apellido:        form.Apellido,
		Email:           form.Email,
		Telefono:        OptionalString(form.Telefono),
		Edad:            ParseOptionalInt(form.Edad),
		Genero:          OptionalString(form.Genero),
		FechaNacimiento: OptionalString(form.FechaNacimiento),
	}
}

// BuildUpdatePersonaVariables sends every field of the edit draft. Empty
// optional values are sent as null so that clearing an input clears the
// stored value.
func BuildUpdatePersonaVariables(form requests.PersonaEditForm) requests.UpdatePersonaVariables {
	return requests.UpdatePersonaVariables{
		ID:              form.ID,
		Nombre:          OptionalString(form.Nombre),
		Apellido:        OptionalString(form.Apellido),
		Email:           OptionalString(form.Email),
		Telefono:        OptionalString(form.Telefono),
		Edad:            ParseOptionalInt(form.Edad),
		Genero:          OptionalString(form.Genero),
		FechaNacimiento: OptionalString(form.FechaNacimiento),
	}
}
