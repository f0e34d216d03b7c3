package repository

import (
	"github.com/remaep/registry_service/internal/domain"
	"gorm.io/gorm"
)

type MatriculaRepository interface {
	FindByDNI(dni string) ([]domain.Matricula, error)
}

type matriculaRepository struct {
	db *gorm.DB
}

func NewMatriculaRepository(db *gorm.DB) MatriculaRepository {
	return &matriculaRepository{db: db}
}

// FindByDNI returns every credential for the DNI within this registry.
// A person may hold several; estado ASC puts ACTIVO rows first. An empty
// slice is a valid outcome, not an error.
func (r *matriculaRepository) FindByDNI(dni string) ([]domain.Matricula, error) {
	var rows []domain.Matricula

	err := r.db.
		Where("dni_alumno = ? AND registro_id = ?", dni, domain.RegistroID).
		Order("estado ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
