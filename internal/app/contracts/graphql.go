package contracts

import (
	"context"
	"personas-web/internal/pkg/queries"
)

// GraphQLClient sends documents to the remote data service. Query results
// are cached per operation and variables until Refetch or Invalidate is
// called for the same pair. Mutations always reach the network.
type GraphQLClient interface {
	Query(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error
	Mutate(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error
	Refetch(ctx context.Context, operation queries.Operation, variables interface{}, out interface{}) error
	Invalidate(ctx context.Context, operation queries.Operation, variables interface{}) error
}
