package requests

// PersonaForm is the create form after sanitization. Tags mirror the
// required inputs of the page.
type PersonaForm struct {
	Nombre          string `json:"nombre" validate:"required"`
	Apellido        string `json:"apellido" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Telefono        string `json:"telefono"`
	Edad            string `json:"edad"`
	Genero          string `json:"genero" validate:"required,oneof=Masculino Femenino"`
	FechaNacimiento string `json:"fechaNacimiento" validate:"required,datetime=2006-01-02"`
}

// PersonaEditForm is the edit surface draft. Optional fields may be left
// empty, in which case the remote value is cleared.
type PersonaEditForm struct {
	ID              string `json:"id" validate:"required"`
	Nombre          string `json:"nombre" validate:"required"`
	Apellido        string `json:"apellido" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Telefono        string `json:"telefono"`
	Edad            string `json:"edad"`
	Genero          string `json:"genero" validate:"omitempty,oneof=Masculino Femenino"`
	FechaNacimiento string `json:"fechaNacimiento" validate:"omitempty,datetime=2006-01-02"`
}

// FieldChange is a single onChange event of a form input.
type FieldChange struct {
	Field string
	Value string
}

type CreatePersonaVariables struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Email           string  `json:"email"`
	Telefono        *string `json:"telefono"`
	Edad            *int    `json:"edad"`
	Genero          *string `json:"genero"`
	FechaNacimiento *string `json:"fechaNacimiento"`
}

// UpdatePersonaVariables always carries every optional field. A nil value is
// sent as null and clears the stored value; the remote service leaves only
// omitted fields unchanged.
type UpdatePersonaVariables struct {
	ID              string  `json:"id"`
	Nombre          *string `json:"nombre,omitempty"`
	Apellido        *string `json:"apellido,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono"`
	Edad            *int    `json:"edad"`
	Genero          *string `json:"genero"`
	FechaNacimiento *string `json:"fechaNacimiento"`
}

type DeletePersonaVariables struct {
	ID string `json:"id"`
}
