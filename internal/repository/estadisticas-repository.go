package repository

import (
	"github.com/remaep/registry_service/internal/domain"
	"gorm.io/gorm"
)

type EstadisticasRepository interface {
	Resumen() (*domain.Estadisticas, error)
}

type estadisticasRepository struct {
	db *gorm.DB
}

func NewEstadisticasRepository(db *gorm.DB) EstadisticasRepository {
	return &estadisticasRepository{db: db}
}

// Resumen selects the single row of the v_estadisticas view. The rollup is
// computed by the database; nothing is derived here.
func (r *estadisticasRepository) Resumen() (*domain.Estadisticas, error) {
	var e domain.Estadisticas
	if err := r.db.Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
