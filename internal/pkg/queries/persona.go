package queries

// Operation pairs a document with the operation name it declares.
type Operation struct {
	Name     string
	Document string
}

// Operation names as declared in the documents below. They are part of the
// response cache key.
const (
	OperationGetPersonas   = "GetPersonas"
	OperationCreatePersona = "CreatePersona"
	OperationUpdatePersona = "UpdatePersona"
	OperationDeletePersona = "DeletePersona"
)

const personaFields = `
			_id
			nombre
			apellido
			email
			telefono
			edad
			genero
			fechaNacimiento
`

const (
	GetPersonas = `
	query GetPersonas {
		getPersonas {` + personaFields + `		}
	}
	`

	CreatePersona = `
	mutation CreatePersona(
		$nombre: String!
		$apellido: String!
		$email: String!
		$telefono: String
		$edad: Int
		$genero: String
		$fechaNacimiento: String
	) {
		createPersona(
			nombre: $nombre
			apellido: $apellido
			email: $email
			telefono: $telefono
			edad: $edad
			genero: $genero
			fechaNacimiento: $fechaNacimiento
		) {` + personaFields + `		}
	}
	`

	UpdatePersona = `
	mutation UpdatePersona(
		$id: ID!
		$nombre: String
		$apellido: String
		$email: String
		$telefono: String
		$edad: Int
		$genero: String
		$fechaNacimiento: String
	) {
		updatePersona(
			id: $id
			nombre: $nombre
			apellido: $apellido
			email: $email
			telefono: $telefono
			edad: $edad
			genero: $genero
			fechaNacimiento: $fechaNacimiento
		) {` + personaFields + `		}
	}
	`

	DeletePersona = `
	mutation DeletePersona($id: ID!) {
		deletePersona(id: $id)
	}
	`
)

var (
	GetPersonasOperation   = Operation{Name: OperationGetPersonas, Document: GetPersonas}
	CreatePersonaOperation = Operation{Name: OperationCreatePersona, Document: CreatePersona}
	UpdatePersonaOperation = Operation{Name: OperationUpdatePersona, Document: UpdatePersona}
	DeletePersonaOperation = Operation{Name: OperationDeletePersona, Document: DeletePersona}
)
