package personas

import (
	"context"
	"personas-web/internal/app/contracts"
	"personas-web/internal/app/models"
	"personas-web/internal/app/services/graphql"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/requests"
	"personas-web/internal/pkg/queries"
	"personas-web/internal/pkg/utils"

	"go.uber.org/zap"
)

type getPersonasData struct {
	GetPersonas []models.Persona `json:"getPersonas"`
}

type createPersonaData struct {
	CreatePersona *models.Persona `json:"createPersona"`
}

type updatePersonaData struct {
	UpdatePersona *models.Persona `json:"updatePersona"`
}

type deletePersonaData struct {
	DeletePersona bool `json:"deletePersona"`
}

type personaGraphQLClient struct {
	Client contracts.GraphQLClient
	Log    *zap.Logger
}

func NewPersonaGraphQLClient(client contracts.GraphQLClient, logger *zap.Logger) contracts.PersonaGraphQLClient {
	return &personaGraphQLClient{
		Client: client,
		Log:    logger,
	}
}

func (c *personaGraphQLClient) FindAll(ctx context.Context) ([]models.Persona, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Debug("personaGraphQLClient.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := graphql.Query[getPersonasData](ctx, c.Client, queries.GetPersonasOperation, nil)
	if err != nil {
		utils.LogErrorByKind(c.Log, "personaGraphQLClient.FindAll error calling Client.Query", err,
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, err
	}

	personas := normalizeAll(result.GetPersonas)
	c.Log.Debug("personaGraphQLClient.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPersonaCountKey, len(personas)),
	)
	return personas, nil
}

// Refetch reloads the list from the network and replaces the cached copy.
func (c *personaGraphQLClient) Refetch(ctx context.Context) ([]models.Persona, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("personaGraphQLClient.Refetch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := graphql.Refetch[getPersonasData](ctx, c.Client, queries.GetPersonasOperation, nil)
	if err != nil {
		utils.LogErrorByKind(c.Log, "personaGraphQLClient.Refetch error calling Client.Refetch", err,
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, err
	}

	personas := normalizeAll(result.GetPersonas)
	c.Log.Info("personaGraphQLClient.Refetch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPersonaCountKey, len(personas)),
	)
	return personas, nil
}

func (c *personaGraphQLClient) Create(ctx context.Context, variables requests.CreatePersonaVariables) (*models.Persona, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("personaGraphQLClient.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := graphql.Mutate[createPersonaData](ctx, c.Client, queries.CreatePersonaOperation, variables)
	if err != nil {
		utils.LogErrorByKind(c.Log, "personaGraphQLClient.Create error calling Client.Mutate", err,
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, err
	}

	persona := normalize(result.CreatePersona)
	c.Log.Info("personaGraphQLClient.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, personaID(persona)),
	)
	return persona, nil
}

func (c *personaGraphQLClient) Update(ctx context.Context, variables requests.UpdatePersonaVariables) (*models.Persona, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("personaGraphQLClient.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, variables.ID),
	)

	result, err := graphql.Mutate[updatePersonaData](ctx, c.Client, queries.UpdatePersonaOperation, variables)
	if err != nil {
		utils.LogErrorByKind(c.Log, "personaGraphQLClient.Update error calling Client.Mutate", err,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPersonaIDKey, variables.ID),
		)
		return nil, err
	}

	c.Log.Info("personaGraphQLClient.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, variables.ID),
	)
	return normalize(result.UpdatePersona), nil
}

// Delete reports whether a record was removed. Deleting an unknown id is not
// an error.
func (c *personaGraphQLClient) Delete(ctx context.Context, id string) (bool, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("personaGraphQLClient.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, id),
	)

	result, err := graphql.Mutate[deletePersonaData](ctx, c.Client, queries.DeletePersonaOperation, requests.DeletePersonaVariables{ID: id})
	if err != nil {
		utils.LogErrorByKind(c.Log, "personaGraphQLClient.Delete error calling Client.Mutate", err,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPersonaIDKey, id),
		)
		return false, err
	}

	c.Log.Info("personaGraphQLClient.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPersonaIDKey, id),
		zap.Bool("deleted", result.DeletePersona),
	)
	return result.DeletePersona, nil
}

func normalizeAll(personas []models.Persona) []models.Persona {
	out := make([]models.Persona, len(personas))
	for i, persona := range personas {
		out[i] = persona.Normalize()
	}
	return out
}

func normalize(persona *models.Persona) *models.Persona {
	if persona == nil {
		return nil
	}
	normalized := persona.Normalize()
	return &normalized
}

func personaID(persona *models.Persona) string {
	if persona == nil {
		return ""
	}
	return persona.ID
}
