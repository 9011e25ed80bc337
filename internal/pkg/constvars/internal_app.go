package constvars

type ContextKey string

const (
	ResourcePersona  = "Persona"
	ResourcePersonas = "personas"
	ResourceSession  = "session"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
)

const (
	REQUEST_ID_PREFIX = "PRSN_WEB_"
)

const (
	SessionCookieName = "personas_session"
)

// Redis key layout shared by the cache, the session store and the locker.
const (
	RedisKeyGraphQLCachePrefix = "gql"
	RedisKeySessionPrefix      = "session"
	RedisKeyLockPrefix         = "lock:persona"
)

const (
	LockComponentCreate = "create"
	LockComponentUpdate = "update"
	LockComponentDelete = "delete"
)

const (
	GeneroMasculino = "Masculino"
	GeneroFemenino  = "Femenino"
)

const (
	DateLayoutISO = "2006-01-02"
	DisplayAbsent = "N/A"
)

// Draft field names, as posted by the form and as sent to the GraphQL API.
const (
	FieldID              = "id"
	FieldNombre          = "nombre"
	FieldApellido        = "apellido"
	FieldEmail           = "email"
	FieldTelefono        = "telefono"
	FieldEdad            = "edad"
	FieldGenero          = "genero"
	FieldFechaNacimiento = "fechaNacimiento"
)

var DraftFields = []string{
	FieldNombre,
	FieldApellido,
	FieldEmail,
	FieldTelefono,
	FieldEdad,
	FieldGenero,
	FieldFechaNacimiento,
}

const (
	NotificationTypeSuccess = "success"
	NotificationTypeError   = "error"
)
