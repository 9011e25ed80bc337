package graphql

import (
	"context"
	"personas-web/internal/app/contracts"
	"personas-web/internal/pkg/queries"
)

// Query is the typed form of GraphQLClient.Query.
func Query[T any](ctx context.Context, client contracts.GraphQLClient, operation queries.Operation, variables interface{}) (T, error) {
	var out T
	err := client.Query(ctx, operation, variables, &out)
	return out, err
}

func Mutate[T any](ctx context.Context, client contracts.GraphQLClient, operation queries.Operation, variables interface{}) (T, error) {
	var out T
	err := client.Mutate(ctx, operation, variables, &out)
	return out, err
}

func Refetch[T any](ctx context.Context, client contracts.GraphQLClient, operation queries.Operation, variables interface{}) (T, error) {
	var out T
	err := client.Refetch(ctx, operation, variables, &out)
	return out, err
}
