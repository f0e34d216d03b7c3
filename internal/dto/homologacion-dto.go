package dto

// HomologacionRequest is the JSON mirror of the public submission form: the
// document is already uploaded and referenced by titulo_url.
type HomologacionRequest struct {
	DNI       string `json:"dni" validate:"required"`
	Apellido  string `json:"apellido" validate:"required"`
	Nombre    string `json:"nombre" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telefono  string `json:"telefono,omitempty"`
	TituloURL string `json:"titulo_url" validate:"required"`
}

// HomologacionFile is the uploaded título taken from the multipart form.
type HomologacionFile struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// HomologacionSubmit carries the full multipart submission: applicant data
// plus the PDF itself.
type HomologacionSubmit struct {
	DNI      string
	Apellido string
	Nombre   string
	Email    string
	Telefono string
	Titulo   HomologacionFile
}

type HomologacionSubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// HomologacionEstadoResponse is the tracking view returned to applicants:
// id, estado and created_at only.
type HomologacionEstadoResponse struct {
	ID        uint   `json:"id"`
	Estado    string `json:"estado"`
	CreatedAt string `json:"created_at"`
}

type HomologacionAdminResponse struct {
	ID              uint    `json:"id"`
	DNI             string  `json:"dni"`
	Apellido        string  `json:"apellido"`
	Nombre          string  `json:"nombre"`
	Email           string  `json:"email"`
	Telefono        string  `json:"telefono,omitempty"`
	TituloURL       string  `json:"titulo_url"`
	Estado          string  `json:"estado"`
	CreatedAt       string  `json:"created_at"`
	FechaResolucion *string `json:"fecha_resolucion,omitempty"`
}

type CambioEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDIENTE EN_REVISION APROBADO RECHAZADO"`
}
