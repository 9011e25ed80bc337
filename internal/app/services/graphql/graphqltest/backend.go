// Package graphqltest provides an in-memory stand-in for the personas
// GraphQL service, with request counting and failure injection.
package graphqltest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"personas-web/internal/app/models"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/queries"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

const (
	ErrMessageMissingFields  = "nombre, apellido y email son obligatorios"
	ErrMessageDuplicateEmail = "el email ya está registrado"
	ErrMessageNotFound       = "persona no encontrada"
	ErrMessageUnknownOp      = "operación desconocida"
)

// Backend implements the four persona operations over an in-memory slice.
// The zero value is not usable, call NewBackend.
type Backend struct {
	mu       sync.Mutex
	personas []models.Persona
	nextID   int
	counts   map[string]int
	failures map[string][]string
	outages  map[string]int
	holds    map[string]*Hold
}

func NewBackend(seed ...models.Persona) *Backend {
	b := &Backend{
		counts:   make(map[string]int),
		failures: make(map[string][]string),
		outages:  make(map[string]int),
		holds:    make(map[string]*Hold),
	}
	b.Seed(seed...)
	return b
}

// Seed appends records. Records without an id get a generated one.
func (b *Backend) Seed(personas ...models.Persona) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, persona := range personas {
		if persona.ID == "" {
			persona.ID = b.newIDLocked()
		}
		b.personas = append(b.personas, persona)
	}
}

// Personas returns a copy of the stored records in insertion order.
func (b *Backend) Personas() []models.Persona {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Persona, len(b.personas))
	copy(out, b.personas)
	return out
}

// RequestCount reports how many requests for operationName were received,
// including failed and held ones.
func (b *Backend) RequestCount(operationName string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[operationName]
}

// FailNext makes the next request for operationName answer with a GraphQL
// error carrying message.
func (b *Backend) FailNext(operationName, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[operationName] = append(b.failures[operationName], message)
}

// FailNetwork makes the next request for operationName answer with a bare
// 503 and no GraphQL body.
func (b *Backend) FailNetwork(operationName string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outages[operationName]++
}

// Hold blocks requests for operationName until Release is called.
func (b *Backend) Hold(operationName string) *Hold {
	b.mu.Lock()
	defer b.mu.Unlock()
	hold := &Hold{
		arrived: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	b.holds[operationName] = hold
	return hold
}

type Hold struct {
	arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

// Arrived fires once a held request reached the backend.
func (h *Hold) Arrived() <-chan struct{} {
	return h.arrived
}

func (h *Hold) Release() {
	h.once.Do(func() { close(h.release) })
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != constvars.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(constvars.StatusBadRequest)
		return
	}
	var request struct {
		Query         string                     `json:"query"`
		OperationName string                     `json:"operationName"`
		Variables     map[string]json.RawMessage `json:"variables"`
	}
	if err := json.Unmarshal(body, &request); err != nil {
		writeErrors(w, err.Error())
		return
	}
	operationName := request.OperationName
	if operationName == "" {
		operationName = detectOperation(request.Query)
	}

	hold, failure, outage := b.admit(operationName)
	if hold != nil {
		select {
		case hold.arrived <- struct{}{}:
		default:
		}
		select {
		case <-hold.release:
		case <-r.Context().Done():
			return
		}
	}
	if outage {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "service unavailable")
		return
	}
	if failure != "" {
		writeErrors(w, failure)
		return
	}

	var (
		data interface{}
		opErr error
	)
	switch operationName {
	case queries.OperationGetPersonas:
		data = map[string]interface{}{"getPersonas": b.Personas()}
	case queries.OperationCreatePersona:
		var persona *models.Persona
		persona, opErr = b.create(request.Variables)
		data = map[string]interface{}{"createPersona": persona}
	case queries.OperationUpdatePersona:
		var persona *models.Persona
		persona, opErr = b.update(request.Variables)
		data = map[string]interface{}{"updatePersona": persona}
	case queries.OperationDeletePersona:
		var deleted bool
		deleted, opErr = b.delete(request.Variables)
		data = map[string]interface{}{"deletePersona": deleted}
	default:
		opErr = fmt.Errorf("%s: %s", ErrMessageUnknownOp, operationName)
	}
	if opErr != nil {
		writeErrors(w, opErr.Error())
		return
	}
	writeData(w, data)
}

func (b *Backend) admit(operationName string) (*Hold, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[operationName]++
	hold := b.holds[operationName]
	if b.outages[operationName] > 0 {
		b.outages[operationName]--
		return hold, "", true
	}
	if pending := b.failures[operationName]; len(pending) > 0 {
		b.failures[operationName] = pending[1:]
		return hold, pending[0], false
	}
	return hold, "", false
}

func (b *Backend) create(variables map[string]json.RawMessage) (*models.Persona, error) {
	raw, err := json.Marshal(variables)
	if err != nil {
		return nil, err
	}
	var input requests.CreatePersonaVariables
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	if input.Nombre == "" || input.Apellido == "" || input.Email == "" {
		return nil, errors.New(ErrMessageMissingFields)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.emailTakenLocked(input.Email, "") {
		return nil, errors.New(ErrMessageDuplicateEmail)
	}
	persona := models.Persona{
		ID:              b.newIDLocked(),
		Nombre:          input.Nombre,
		Apellido:        input.Apellido,
		Email:           input.Email,
		Telefono:        input.Telefono,
		Edad:            input.Edad,
		Genero:          input.Genero,
		FechaNacimiento: input.FechaNacimiento,
	}
	b.personas = append(b.personas, persona)
	return &persona, nil
}

// update only touches the arguments present in variables. An explicit null
// clears an optional value.
func (b *Backend) update(variables map[string]json.RawMessage) (*models.Persona, error) {
	var id string
	if err := json.Unmarshal(variables[constvars.FieldID], &id); err != nil || id == "" {
		return nil, errors.New(ErrMessageNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	index := b.indexLocked(id)
	if index < 0 {
		return nil, errors.New(ErrMessageNotFound)
	}
	persona := b.personas[index]

	required := map[string]*string{
		constvars.FieldNombre:   &persona.Nombre,
		constvars.FieldApellido: &persona.Apellido,
		constvars.FieldEmail:    &persona.Email,
	}
	for field, target := range required {
		raw, ok := variables[field]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
	}
	if b.emailTakenLocked(persona.Email, id) {
		return nil, errors.New(ErrMessageDuplicateEmail)
	}

	optional := map[string]**string{
		constvars.FieldTelefono:        &persona.Telefono,
		constvars.FieldGenero:          &persona.Genero,
		constvars.FieldFechaNacimiento: &persona.FechaNacimiento,
	}
	for field, target := range optional {
		raw, ok := variables[field]
		if !ok {
			continue
		}
		*target = nil
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
	}
	if raw, ok := variables[constvars.FieldEdad]; ok {
		persona.Edad = nil
		if err := json.Unmarshal(raw, &persona.Edad); err != nil {
			return nil, err
		}
	}

	b.personas[index] = persona
	return &persona, nil
}

func (b *Backend) delete(variables map[string]json.RawMessage) (bool, error) {
	var id string
	if err := json.Unmarshal(variables[constvars.FieldID], &id); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	index := b.indexLocked(id)
	if index < 0 {
		return false, nil
	}
	b.personas = append(b.personas[:index], b.personas[index+1:]...)
	return true, nil
}

func (b *Backend) indexLocked(id string) int {
	for i, persona := range b.personas {
		if persona.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) emailTakenLocked(email, exceptID string) bool {
	for _, persona := range b.personas {
		if persona.ID != exceptID && strings.EqualFold(persona.Email, email) {
			return true
		}
	}
	return false
}

// newIDLocked mimics a 24 hex digit document id.
func (b *Backend) newIDLocked() string {
	b.nextID++
	return fmt.Sprintf("%024x", b.nextID)
}

func detectOperation(query string) string {
	for _, operationName := range []string{
		queries.OperationCreatePersona,
		queries.OperationUpdatePersona,
		queries.OperationDeletePersona,
		queries.OperationGetPersonas,
	} {
		field := strings.ToLower(operationName[:1]) + operationName[1:]
		if strings.Contains(query, field) {
			return operationName
		}
	}
	return ""
}

func writeData(w http.ResponseWriter, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		writeErrors(w, err.Error())
		return
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSONCharsetUTF8)
	json.NewEncoder(w).Encode(responses.GraphQLResponse{Data: raw})
}

func writeErrors(w http.ResponseWriter, messages ...string) {
	graphqlErrors := make([]responses.GraphQLError, 0, len(messages))
	for _, message := range messages {
		graphqlErrors = append(graphqlErrors, responses.GraphQLError{Message: message})
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSONCharsetUTF8)
	json.NewEncoder(w).Encode(responses.GraphQLResponse{Data: json.RawMessage("null"), Errors: graphqlErrors})
}
