package graphqltest

import (
	"net/http/httptest"
	"personas-web/internal/app/models"
)

// Server serves a Backend over a real loopback listener.
type Server struct {
	*Backend
	HTTP *httptest.Server
}

func NewServer(seed ...models.Persona) *Server {
	backend := NewBackend(seed...)
	return &Server{
		Backend: backend,
		HTTP:    httptest.NewServer(backend),
	}
}

// Endpoint is the address to configure as the GraphQL endpoint.
func (s *Server) Endpoint() string {
	return s.HTTP.URL + "/graphql"
}

func (s *Server) Close() {
	s.HTTP.Close()
}
