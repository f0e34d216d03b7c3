package handlers

import (
	"context"
	"time"

	"github.com/remaep/registry_service/internal/domain"
	"gorm.io/gorm"
)

type fakeHomologacionRepo struct {
	rows   []domain.Homologacion
	nextID uint
}

func newFakeHomologacionRepo() *fakeHomologacionRepo {
	return &fakeHomologacionRepo{nextID: 1}
}

func (f *fakeHomologacionRepo) Create(h *domain.Homologacion) error {
	h.ID = f.nextID
	h.CreatedAt = time.Now()
	f.nextID++
	f.rows = append(f.rows, *h)
	return nil
}

func (f *fakeHomologacionRepo) FindByID(id uint) (*domain.Homologacion, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			h := f.rows[i]
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHomologacionRepo) FindEnProcesoByDNI(dni string) (*domain.Homologacion, error) {
	for i := range f.rows {
		if f.rows[i].DNI == dni && f.rows[i].Estado.EnProceso() {
			h := f.rows[i]
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHomologacionRepo) FindUltima(dni, email string) (*domain.Homologacion, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		h := f.rows[i]
		if dni != "" && h.DNI != dni {
			continue
		}
		if email != "" && h.Email != email {
			continue
		}
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHomologacionRepo) ListAll(filtro string) ([]domain.Homologacion, error) {
	out := make([]domain.Homologacion, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeHomologacionRepo) CountPendientes() (int64, error) {
	var n int64
	for i := range f.rows {
		if f.rows[i].Estado == domain.HomologacionPendiente {
			n++
		}
	}
	return n, nil
}

func (f *fakeHomologacionRepo) CambiarEstado(id uint, estado domain.HomologacionEstado) (*domain.Homologacion, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			now := time.Now()
			f.rows[i].Estado = estado
			f.rows[i].FechaResolucion = &now
			h := f.rows[i]
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUploader struct {
	calls int
}

func (f *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	f.calls++
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

type fakeMatriculaRepo struct {
	rows map[string][]domain.Matricula
	fail error
}

func (f *fakeMatriculaRepo) FindByDNI(dni string) ([]domain.Matricula, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.rows[dni], nil
}

type fakeEstadisticasRepo struct {
	resumen domain.Estadisticas
}

func (f *fakeEstadisticasRepo) Resumen() (*domain.Estadisticas, error) {
	r := f.resumen
	return &r, nil
}

type fakeAdminRepo struct {
	admins []domain.AdminUser
}

func (f *fakeAdminRepo) FindByEmail(email string) (*domain.AdminUser, error) {
	for i := range f.admins {
		if f.admins[i].Email == email {
			a := f.admins[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepo) Create(admin *domain.AdminUser) error {
	admin.ID = uint(len(f.admins) + 1)
	f.admins = append(f.admins, *admin)
	return nil
}
