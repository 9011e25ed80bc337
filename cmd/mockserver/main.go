package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"personas-web/internal/app/models"
	"personas-web/internal/app/services/graphql/graphqltest"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	listenAddr string
	seedPath   string
)

// rootCmd serves an in-memory personas GraphQL API for local development.
var rootCmd = &cobra.Command{
	Use:   "mockserver",
	Short: "Serve an in-memory personas GraphQL API",
	Long: `Serve the GetPersonas, CreatePersona, UpdatePersona and DeletePersona
operations from memory at /graphql.

Records can be preloaded from a YAML file holding a list of personas:

  - id: 65f1c0a2b3d4e5f601234567
    nombre: Ana
    apellido: Diaz
    email: ana@example.com
    edad: 34`,
	SilenceUsage: true,
	RunE:         runMockServer,
}

func init() {
	rootCmd.Flags().StringVar(&listenAddr, "addr", ":4000", "address to listen on")
	rootCmd.Flags().StringVar(&seedPath, "seed", "", "YAML file with personas to preload")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMockServer(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	seed, err := loadSeed(seedPath)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Handle("/graphql", graphqltest.NewBackend(seed...))

	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("mock GraphQL API listening",
			zap.String("addr", listenAddr),
			zap.Int("seeded", len(seed)),
		)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadSeed(path string) ([]models.Persona, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var personas []models.Persona
	if err := yaml.Unmarshal(data, &personas); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, persona := range personas {
		if persona.Nombre == "" || persona.Apellido == "" || persona.Email == "" {
			return nil, fmt.Errorf("seed persona %d: nombre, apellido and email are required", i)
		}
	}
	return personas, nil
}
