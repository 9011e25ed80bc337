package utils

import (
	"personas-web/internal/pkg/dto/requests"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "non numeric", input: "abc", want: nil},
		{name: "zero", input: "0", want: nil},
		{name: "decimal is truncated", input: "25.5", want: intPtr(25)},
		{name: "trailing text is ignored", input: "30 años", want: intPtr(30)},
		{name: "signed", input: "+7", want: intPtr(7)},
		{name: "sign only", input: "-", want: nil},
		{name: "decimal below one", input: "0.9", want: nil},
		{name: "above int32", input: "2147483648", want: nil},
		{name: "below int32", input: "-2147483649", want: nil},
		{name: "int32 max", input: "2147483647", want: intPtr(2147483647)},
		{name: "number", input: "25", want: intPtr(25)},
		{name: "padded number", input: " 41 ", want: intPtr(41)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOptionalInt(tt.input))
		})
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("  "))
	require.NotNil(t, OptionalString("Femenino"))
	assert.Equal(t, "Femenino", *OptionalString("Femenino"))
}

func TestBuildCreatePersonaVariables(t *testing.T) {
	variables := BuildCreatePersonaVariables(requests.PersonaForm{
		Nombre:   "Ana",
		Apellido: "Diaz",
		Email:    "ana@example.com",
		Edad:     "abc",
		Genero:   "Femenino",
	})

	assert.Equal(t, "Ana", variables.Nombre)
	assert.Nil(t, variables.Telefono, "empty optional is sent as null")
	assert.Nil(t, variables.Edad, "non numeric age is sent as null")
	assert.Nil(t, variables.FechaNacimiento)
	require.NotNil(t, variables.Genero)
	assert.Equal(t, "Femenino", *variables.Genero)
}

func TestBuildUpdatePersonaVariables(t *testing.T) {
	variables := BuildUpdatePersonaVariables(requests.PersonaEditForm{
		ID:       "abc",
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Email:    "ana@example.com",
		Edad:     "30",
	})

	assert.Equal(t, "abc", variables.ID)
	require.NotNil(t, variables.Apellido)
	assert.Equal(t, "Ruiz", *variables.Apellido)
	require.NotNil(t, variables.Edad)
	assert.Equal(t, 30, *variables.Edad)
	assert.Nil(t, variables.Telefono)

	payload, err := json.Marshal(variables)
	require.NoError(t, err)
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &sent))
	for _, field := range []string{"telefono", "genero", "fechaNacimiento"} {
		value, present := sent[field]
		assert.True(t, present, "%s is sent so the service clears it", field)
		assert.Nil(t, value, field)
	}
	assert.Equal(t, float64(30), sent["edad"])
}

func intPtr(v int) *int { return &v }
