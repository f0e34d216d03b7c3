package repository

import (
	"time"

	"github.com/remaep/registry_service/internal/domain"
	"gorm.io/gorm"
)

type HomologacionRepository interface {
	Create(h *domain.Homologacion) error
	FindByID(id uint) (*domain.Homologacion, error)
	FindEnProcesoByDNI(dni string) (*domain.Homologacion, error)
	FindUltima(dni, email string) (*domain.Homologacion, error)
	ListAll(filtro string) ([]domain.Homologacion, error)
	CountPendientes() (int64, error)
	CambiarEstado(id uint, estado domain.HomologacionEstado) (*domain.Homologacion, error)
}

type homologacionRepository struct {
	db *gorm.DB
}

func NewHomologacionRepository(db *gorm.DB) HomologacionRepository {
	return &homologacionRepository{db: db}
}

func (r *homologacionRepository) Create(h *domain.Homologacion) error {
	return r.db.Create(h).Error
}

func (r *homologacionRepository) FindByID(id uint) (*domain.Homologacion, error) {
	var h domain.Homologacion
	if err := r.db.First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// FindEnProcesoByDNI returns the request blocking a new submission for this
// DNI, i.e. one still PENDIENTE or EN_REVISION.
func (r *homologacionRepository) FindEnProcesoByDNI(dni string) (*domain.Homologacion, error) {
	var h domain.Homologacion
	err := r.db.
		Where("dni = ? AND estado IN ?", dni, []domain.HomologacionEstado{
			domain.HomologacionPendiente,
			domain.HomologacionEnRevision,
		}).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// FindUltima returns the most recent request matching dni and/or email.
// Empty filter strings are skipped; the caller guarantees at least one.
func (r *homologacionRepository) FindUltima(dni, email string) (*domain.Homologacion, error) {
	q := r.db.Order("created_at DESC")
	if dni != "" {
		q = q.Where("dni = ?", dni)
	}
	if email != "" {
		q = q.Where("email = ?", email)
	}

	var h domain.Homologacion
	if err := q.First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *homologacionRepository) ListAll(filtro string) ([]domain.Homologacion, error) {
	q := r.db.Order("created_at DESC")
	if filtro != "" {
		q = q.Where("dni LIKE ? OR LOWER(apellido) LIKE LOWER(?)", "%"+filtro+"%", "%"+filtro+"%")
	}

	var rows []domain.Homologacion
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *homologacionRepository) CountPendientes() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Homologacion{}).
		Where("estado = ?", domain.HomologacionPendiente).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CambiarEstado sets the new estado and stamps fecha_resolucion with the
// current time regardless of which state is entered, EN_REVISION included.
// Any-to-any transitions are allowed; there is no optimistic-concurrency
// check, so concurrent admin edits last-write-win.
func (r *homologacionRepository) CambiarEstado(id uint, estado domain.HomologacionEstado) (*domain.Homologacion, error) {
	now := time.Now()

	var h domain.Homologacion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Homologacion{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"estado":           estado,
				"fecha_resolucion": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&h, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}
