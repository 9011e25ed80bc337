package graphql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/models"
	"personas-web/internal/app/services/graphql/graphqltest"
	"personas-web/internal/app/services/shared/memstore"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/exceptions"
	"personas-web/internal/pkg/queries"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type personasData struct {
	GetPersonas []models.Persona `json:"getPersonas"`
}

func newTestClient(t *testing.T, cfg ClientConfig) (contracts.GraphQLClient, *memstore.Store) {
	t.Helper()
	store := memstore.NewStore(time.Minute)
	t.Cleanup(func() { store.Close() })
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	client := NewGraphQLClient(cfg, NewResponseCache(store, zap.NewNop()), zap.NewNop())
	return client, store
}

func TestCacheKey(t *testing.T) {
	t.Run("Variable order does not change the key", func(t *testing.T) {
		fromMap, err := CacheKey("Op", map[string]interface{}{"b": 1, "a": "x"})
		require.NoError(t, err)
		fromStruct, err := CacheKey("Op", struct {
			A string `json:"a"`
			B int    `json:"b"`
		}{A: "x", B: 1})
		require.NoError(t, err)

		assert.Equal(t, fromMap, fromStruct)
		assert.Equal(t, `gql:Op:{"a":"x","b":1}`, fromMap)
	})

	t.Run("No variables", func(t *testing.T) {
		key, err := CacheKey(queries.OperationGetPersonas, nil)
		require.NoError(t, err)
		assert.Equal(t, "gql:GetPersonas:{}", key)
	})

	t.Run("Different operations never share a key", func(t *testing.T) {
		a, _ := CacheKey("A", nil)
		b, _ := CacheKey("B", nil)
		assert.NotEqual(t, a, b)
	})
}

func TestGraphQLClient_QueryIsCached(t *testing.T) {
	server := graphqltest.NewServer(models.Persona{Nombre: "Ana", Apellido: "Diaz", Email: "ana@example.com"})
	defer server.Close()
	client, store := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})
	ctx := context.Background()

	first, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	second, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.GetPersonas, 1)
	assert.Equal(t, 1, server.RequestCount(queries.OperationGetPersonas), "second query is served from cache")

	raw, err := store.Get(ctx, "gql:GetPersonas:{}")
	require.NoError(t, err)
	assert.Contains(t, raw, "ana@example.com")
}

func TestGraphQLClient_ConcurrentQueriesShareOneRequest(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})

	hold := server.Hold(queries.OperationGetPersonas)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Query[personasData](context.Background(), client, queries.GetPersonasOperation, nil)
			assert.NoError(t, err)
		}()
	}
	<-hold.Arrived()
	time.Sleep(20 * time.Millisecond)
	hold.Release()
	wg.Wait()

	assert.Equal(t, 1, server.RequestCount(queries.OperationGetPersonas))
}

func TestGraphQLClient_RefetchReplacesEntry(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})
	ctx := context.Background()

	before, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Empty(t, before.GetPersonas)

	server.Seed(models.Persona{Nombre: "Luis", Apellido: "Mora", Email: "luis@example.com"})

	stale, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Empty(t, stale.GetPersonas, "entries do not expire on their own")

	fresh, err := Refetch[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Len(t, fresh.GetPersonas, 1)

	cached, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)
	assert.Equal(t, 2, server.RequestCount(queries.OperationGetPersonas))
}

func TestGraphQLClient_InvalidateForcesNetwork(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})
	ctx := context.Background()

	_, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	require.NoError(t, client.Invalidate(ctx, queries.GetPersonasOperation, nil))
	_, err = Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, server.RequestCount(queries.OperationGetPersonas))
}

func TestGraphQLClient_InFlightQueryDoesNotOverwriteRefetch(t *testing.T) {
	var calls int32
	releaseFirst := make(chan struct{})
	firstArrived := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstArrived)
			<-releaseFirst
			w.Write([]byte(`{"data":{"getPersonas":[{"_id":"1","nombre":"viejo","apellido":"a","email":"a@a.com"}]}}`))
			return
		}
		w.Write([]byte(`{"data":{"getPersonas":[{"_id":"1","nombre":"nuevo","apellido":"a","email":"a@a.com"}]}}`))
	})
	server := httptest.NewServer(handler)
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{Endpoint: server.URL})
	ctx := context.Background()

	staleDone := make(chan personasData)
	go func() {
		data, _ := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
		staleDone <- data
	}()
	<-firstArrived

	fresh, err := Refetch[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", fresh.GetPersonas[0].Nombre)

	close(releaseFirst)
	stale := <-staleDone
	assert.Equal(t, "viejo", stale.GetPersonas[0].Nombre)

	cached, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", cached.GetPersonas[0].Nombre, "the late stale response must not replace the refetched entry")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGraphQLClient_MutationsAreNeverCached(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, store := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := Mutate[map[string]models.Persona](ctx, client, queries.CreatePersonaOperation, requests.CreatePersonaVariables{
			Nombre: "N", Apellido: "A", Email: email,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, server.RequestCount(queries.OperationCreatePersona))
	assert.Equal(t, 0, store.Len())
}

func TestGraphQLClient_ServiceError(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})
	ctx := context.Background()

	server.FailNext(queries.OperationGetPersonas, "base de datos caída")
	_, err := Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.Error(t, err)
	assert.Equal(t, exceptions.KindService, exceptions.KindOf(err))
	assert.Equal(t, "base de datos caída", exceptions.ClientMessageOf(err))

	_, err = Query[personasData](ctx, client, queries.GetPersonasOperation, nil)
	require.NoError(t, err, "failures are not cached")
	assert.Equal(t, 2, server.RequestCount(queries.OperationGetPersonas))
}

func TestGraphQLClient_NetworkErrors(t *testing.T) {
	t.Run("Non 2xx status without a GraphQL body", func(t *testing.T) {
		server := graphqltest.NewServer()
		defer server.Close()
		client, _ := newTestClient(t, ClientConfig{Endpoint: server.Endpoint()})

		server.FailNetwork(queries.OperationDeletePersona)
		_, err := Mutate[map[string]bool](context.Background(), client, queries.DeletePersonaOperation, requests.DeletePersonaVariables{ID: "x"})
		require.Error(t, err)
		assert.Equal(t, exceptions.KindNetwork, exceptions.KindOf(err))
	})

	t.Run("Unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		endpoint := server.URL
		server.Close()
		client, _ := newTestClient(t, ClientConfig{Endpoint: endpoint, Timeout: time.Second})

		_, err := Query[personasData](context.Background(), client, queries.GetPersonasOperation, nil)
		require.Error(t, err)
		assert.Equal(t, exceptions.KindNetwork, exceptions.KindOf(err))
	})

	t.Run("Undecodable response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()
		client, _ := newTestClient(t, ClientConfig{Endpoint: server.URL})

		_, err := Query[personasData](context.Background(), client, queries.GetPersonasOperation, nil)
		require.Error(t, err)
		assert.Equal(t, exceptions.KindNetwork, exceptions.KindOf(err))
	})
}

func TestGraphQLClient_RateLimiter(t *testing.T) {
	server := graphqltest.NewServer()
	defer server.Close()
	client, _ := newTestClient(t, ClientConfig{
		Endpoint:             server.Endpoint(),
		MaxRequestsPerSecond: 0.001,
		MaxBurst:             1,
	})

	_, err := Mutate[map[string]bool](context.Background(), client, queries.DeletePersonaOperation, requests.DeletePersonaVariables{ID: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = Mutate[map[string]bool](ctx, client, queries.DeletePersonaOperation, requests.DeletePersonaVariables{ID: "x"})
	require.Error(t, err)
	assert.Equal(t, exceptions.KindNetwork, exceptions.KindOf(err))
	assert.Equal(t, 1, server.RequestCount(queries.OperationDeletePersona))
}
