package domain

import (
	"time"

	"gorm.io/gorm"
)

type MatriculaEstado string

const (
	MatriculaActiva     MatriculaEstado = "ACTIVO"
	MatriculaSuspendida MatriculaEstado = "SUSPENDIDO"
	MatriculaVencida    MatriculaEstado = "VENCIDO"
)

// RegistroID is the owning registry tag. Every row carries the same value;
// rows belonging to other registries never surface through this service.
const RegistroID = "remaep"

// Matricula is an issued professional credential. Rows are created and
// mutated by back-office processes; this service only reads them.
type Matricula struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	DNIAlumno        string          `gorm:"column:dni_alumno;type:varchar(8);not null;index" json:"dni_alumno"`
	Apellido         string          `gorm:"not null" json:"apellido"`
	Nombre           string          `gorm:"not null" json:"nombre"`
	Curso            string          `gorm:"not null" json:"curso"`
	Estado           MatriculaEstado `gorm:"type:varchar(20);not null;default:'ACTIVO'" json:"estado"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	FotoURL          *string         `gorm:"type:text" json:"foto_url,omitempty"`
	RegistroID       string          `gorm:"column:registro_id;type:varchar(20);not null;index" json:"registro_id"`
	InstitutionID    *string         `gorm:"column:institution_id;type:varchar(50)" json:"institution_id,omitempty"`
	gorm.Model
}

func (Matricula) TableName() string {
	return "matriculas"
}
