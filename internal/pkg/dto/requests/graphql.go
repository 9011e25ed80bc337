package requests

// GraphQLRequest is the POST body understood by the remote GraphQL endpoint.
type GraphQLRequest struct {
	Query         string      `json:"query"`
	OperationName string      `json:"operationName"`
	Variables     interface{} `json:"variables,omitempty"`
}
