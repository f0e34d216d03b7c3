package dto

type MatriculaResponse struct {
	ID               uint    `json:"id"`
	DNIAlumno        string  `json:"dni_alumno"`
	Apellido         string  `json:"apellido"`
	Nombre           string  `json:"nombre"`
	Curso            string  `json:"curso"`
	Estado           string  `json:"estado"`
	FechaVencimiento string  `json:"fecha_vencimiento"`
	FotoURL          *string `json:"foto_url,omitempty"`
	RegistroID       string  `json:"registro_id"`
	InstitutionID    *string `json:"institution_id,omitempty"`
}

type EstadisticasResponse struct {
	TotalMatriculas int64 `json:"total_matriculas"`
	Activas         int64 `json:"activas"`
	Pendientes      int64 `json:"pendientes"`
}
