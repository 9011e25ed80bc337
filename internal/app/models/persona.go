package models

import (
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/utils"
	"strings"
)

// Persona is a record as returned by the remote GraphQL API. Optional values
// are pointers; nil means the value is absent.
type Persona struct {
	ID              string  `json:"_id" yaml:"id"`
	Nombre          string  `json:"nombre" yaml:"nombre"`
	Apellido        string  `json:"apellido" yaml:"apellido"`
	Email           string  `json:"email" yaml:"email"`
	Telefono        *string `json:"telefono" yaml:"telefono,omitempty"`
	Edad            *int    `json:"edad" yaml:"edad,omitempty"`
	Genero          *string `json:"genero" yaml:"genero,omitempty"`
	FechaNacimiento *string `json:"fechaNacimiento" yaml:"fechaNacimiento,omitempty"`
}

// Normalize maps empty optional values to absent, so that a record the
// service echoes back with "" compares equal to one it echoes back with null.
func (p Persona) Normalize() Persona {
	p.Telefono = utils.OptionalString(utils.StringOrEmpty(p.Telefono))
	p.Genero = utils.OptionalString(utils.StringOrEmpty(p.Genero))
	p.FechaNacimiento = utils.OptionalString(utils.StringOrEmpty(p.FechaNacimiento))
	if p.Edad != nil && *p.Edad == 0 {
		p.Edad = nil
	}
	return p
}

// ToDraft seeds an edit draft from the record. Every value is copied, the
// draft never aliases the record.
func (p Persona) ToDraft() PersonaDraft {
	return PersonaDraft{
		ID:              p.ID,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		Email:           p.Email,
		Telefono:        utils.StringOrEmpty(p.Telefono),
		Edad:            utils.IntOrEmpty(p.Edad),
		Genero:          utils.StringOrEmpty(p.Genero),
		FechaNacimiento: utils.StringOrEmpty(p.FechaNacimiento),
	}
}

func (p Persona) ConvertIntoResponse(index int) responses.PersonaRow {
	return responses.PersonaRow{
		Index:           index,
		ID:              p.ID,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		Email:           p.Email,
		Telefono:        utils.StringOrEmpty(p.Telefono),
		Edad:            utils.IntOrEmpty(p.Edad),
		Genero:          utils.StringOrEmpty(p.Genero),
		FechaNacimiento: utils.StringOrEmpty(p.FechaNacimiento),
	}
}

// PersonaDraft holds form values exactly as typed. ID is only set on edit
// drafts.
type PersonaDraft struct {
	ID              string `json:"id,omitempty"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Edad            string `json:"edad"`
	Genero          string `json:"genero"`
	FechaNacimiento string `json:"fechaNacimiento"`
}

// With returns a new draft with one field replaced. The receiver is left
// untouched.
func (d PersonaDraft) With(field, value string) (PersonaDraft, error) {
	switch field {
	case constvars.FieldNombre:
		d.Nombre = value
	case constvars.FieldApellido:
		d.Apellido = value
	case constvars.FieldEmail:
		d.Email = value
	case constvars.FieldTelefono:
		d.Telefono = value
	case constvars.FieldEdad:
		d.Edad = value
	case constvars.FieldGenero:
		d.Genero = value
	case constvars.FieldFechaNacimiento:
		d.FechaNacimiento = value
	default:
		return d, exceptions.ErrUnknownDraftField(field)
	}
	return d, nil
}

func (d PersonaDraft) Value(field string) string {
	switch field {
	case constvars.FieldID:
		return d.ID
	case constvars.FieldNombre:
		return d.Nombre
	case constvars.FieldApellido:
		return d.Apellido
	case constvars.FieldEmail:
		return d.Email
	case constvars.FieldTelefono:
		return d.Telefono
	case constvars.FieldEdad:
		return d.Edad
	case constvars.FieldGenero:
		return d.Genero
	case constvars.FieldFechaNacimiento:
		return d.FechaNacimiento
	}
	return ""
}

func (d PersonaDraft) IsEmpty() bool {
	for _, field := range constvars.DraftFields {
		if strings.TrimSpace(d.Value(field)) != "" {
			return false
		}
	}
	return d.ID == ""
}

func (d PersonaDraft) ToCreateForm() requests.PersonaForm {
	return requests.PersonaForm{
		Nombre:          d.Nombre,
		Apellido:        d.Apellido,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Edad:            d.Edad,
		Genero:          d.Genero,
		FechaNacimiento: d.FechaNacimiento,
	}
}

func (d PersonaDraft) ToEditForm() requests.PersonaEditForm {
	return requests.PersonaEditForm{
		ID:              d.ID,
		Nombre:          d.Nombre,
		Apellido:        d.Apellido,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Edad:            d.Edad,
		Genero:          d.Genero,
		FechaNacimiento: d.FechaNacimiento,
	}
}

func (d PersonaDraft) ConvertIntoResponse() responses.PersonaDraft {
	return responses.PersonaDraft{
		ID:              d.ID,
		Nombre:          d.Nombre,
		Apellido:        d.Apellido,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Edad:            d.Edad,
		Genero:          d.Genero,
		FechaNacimiento: d.FechaNacimiento,
	}
}
