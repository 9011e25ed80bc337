package utils

import (
	"personas-web/internal/pkg/dto/requests"
	"strings"
)

func SanitizePersonaForm(input *requests.PersonaForm) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Apellido = strings.TrimSpace(input.Apellido)
	input.Email = strings.TrimSpace(input.Email)
	input.Telefono = strings.TrimSpace(input.Telefono)
	input.Edad = strings.TrimSpace(input.Edad)
	input.Genero = strings.TrimSpace(input.Genero)
	input.FechaNacimiento = strings.TrimSpace(input.FechaNacimiento)
}

func SanitizePersonaEditForm(input *requests.PersonaEditForm) {
	input.ID = strings.TrimSpace(input.ID)
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Apellido = strings.TrimSpace(input.Apellido)
	input.Email = strings.TrimSpace(input.Email)
	input.Telefono = strings.TrimSpace(input.Telefono)
	input.Edad = strings.TrimSpace(input.Edad)
	input.Genero = strings.TrimSpace(input.Genero)
	input.FechaNacimiento = strings.TrimSpace(input.FechaNacimiento)
}
