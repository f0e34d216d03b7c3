package domain

import (
	"time"

	"gorm.io/gorm"
)

type HomologacionEstado string

const (
	HomologacionPendiente  HomologacionEstado = "PENDIENTE"
	HomologacionEnRevision HomologacionEstado = "EN_REVISION"
	HomologacionAprobada   HomologacionEstado = "APROBADO"
	HomologacionRechazada  HomologacionEstado = "RECHAZADO"
)

// EstadoValido reports whether s is one of the four request states.
func EstadoValido(s string) bool {
	switch HomologacionEstado(s) {
	case HomologacionPendiente, HomologacionEnRevision, HomologacionAprobada, HomologacionRechazada:
		return true
	}
	return false
}

// EnProceso reports whether the state is non-terminal. At most one request
// per DNI may be in a non-terminal state at any time.
func (e HomologacionEstado) EnProceso() bool {
	return e == HomologacionPendiente || e == HomologacionEnRevision
}

// Homologacion is a credential-recognition application. Created PENDIENTE by
// the public submission flow, mutated only by the admin review flow, never
// deleted.
type Homologacion struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DNI      string `gorm:"type:varchar(8);not null;index" json:"dni"`
	Apellido string `gorm:"not null" json:"apellido"`
	Nombre   string `gorm:"not null" json:"nombre"`
	Email    string `gorm:"not null" json:"email"`
	Telefono string `gorm:"type:varchar(20)" json:"telefono,omitempty"`

	TituloURL string             `gorm:"column:titulo_url;type:text;not null" json:"titulo_url"`
	Estado    HomologacionEstado `gorm:"type:varchar(20);not null;default:'PENDIENTE'" json:"estado"`

	// Stamped on every state change, EN_REVISION included.
	FechaResolucion *time.Time `gorm:"column:fecha_resolucion" json:"fecha_resolucion,omitempty"`
	gorm.Model
}

func (Homologacion) TableName() string {
	return "homologaciones"
}
