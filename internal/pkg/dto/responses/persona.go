package responses

// ListStatus is the single render state of the record list. Exactly one
// status applies to a given render.
type ListStatus string

const (
	ListStatusLoading ListStatus = "loading"
	ListStatusError   ListStatus = "error"
	ListStatusReady   ListStatus = "ready"
)

type PersonaRow struct {
	Index           int    `json:"index"`
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono,omitempty"`
	Edad            string `json:"edad,omitempty"`
	Genero          string `json:"genero,omitempty"`
	FechaNacimiento string `json:"fechaNacimiento,omitempty"`
}

type PersonaListView struct {
	Status       ListStatus   `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Rows         []PersonaRow `json:"rows,omitempty"`
}

func (v PersonaListView) IsLoading() bool { return v.Status == ListStatusLoading }
func (v PersonaListView) IsError() bool   { return v.Status == ListStatusError }
func (v PersonaListView) IsReady() bool   { return v.Status == ListStatusReady }

type PersonaDraft struct {
	ID              string `json:"id,omitempty"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Edad            string `json:"edad"`
	Genero          string `json:"genero"`
	FechaNacimiento string `json:"fechaNacimiento"`
}

type EditSurface struct {
	Open  bool         `json:"open"`
	Token string       `json:"token,omitempty"`
	Draft PersonaDraft `json:"draft"`
}

type Notification struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

type PersonaPage struct {
	Draft         PersonaDraft
	Edit          EditSurface
	Notifications []Notification
	List          PersonaListView
	GeneroOptions []string
}
