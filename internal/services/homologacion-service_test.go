package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/remaep/registry_service/internal/domain"
	"github.com/remaep/registry_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---------- fakes ----------

type fakeHomologacionRepo struct {
	rows   []domain.Homologacion
	nextID uint
	fail   error
}

func newFakeHomologacionRepo() *fakeHomologacionRepo {
	return &fakeHomologacionRepo{nextID: 1}
}

func (f *fakeHomologacionRepo) Create(h *domain.Homologacion) error {
	if f.fail != nil {
		return f.fail
	}
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
	fail  error
}

func (f *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	f.calls++
	if f.fail != nil {
		return "", f.fail
	}
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}

type fakeProducer struct {
	keys []string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	return nil
}

func validSubmit() dto.HomologacionSubmit {
	return dto.HomologacionSubmit{
		DNI:      "30111222",
		Apellido: "  Pérez ",
		Nombre:   "Ana",
		Email:    "Ana.Perez@Mail.com",
		Telefono: "+54 11 5678-1234",
		Titulo: dto.HomologacionFile{
			Filename:    "titulo.pdf",
			ContentType: "application/pdf",
			Bytes:       []byte("%PDF-1.4 contenido"),
		},
	}
}

// ---------- submission ----------

func TestSubmitCreatesPendiente(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{}
	prod := &fakeProducer{}
	svc := NewHomologacionService(repo, up, prod)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
	assert.Equal(t, 1, up.calls)

	h, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, domain.HomologacionPendiente, h.Estado)
	assert.Equal(t, "30111222", h.DNI)
	assert.Equal(t, "Pérez", h.Apellido)
	assert.Equal(t, "ana.perez@mail.com", h.Email)
	assert.Equal(t, "541156781234", h.Telefono)
	assert.Contains(t, h.TituloURL, "titulos/homologaciones/")
	assert.Contains(t, h.TituloURL, "_30111222.pdf")
	assert.Nil(t, h.FechaResolucion)
	assert.Equal(t, []string{"homologacion.solicitada"}, prod.keys)
}

func TestSubmitRejectsInvalidFieldsWithoutSideEffects(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{}
	svc := NewHomologacionService(repo, up, nil)

	input := validSubmit()
	input.DNI = "12x"
	input.Apellido = "   "
	input.Email = "sin-arroba"

	_, err := svc.Submit(context.Background(), input)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "dni")
	assert.Contains(t, fields, "apellido")
	assert.Contains(t, fields, "email")
	assert.Equal(t, 0, up.calls)
	assert.Empty(t, repo.rows)
}

func TestSubmitRejectsNonPDFBeforeAnyCall(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{}
	svc := NewHomologacionService(repo, up, nil)

	input := validSubmit()
	input.Titulo.ContentType = "image/png"

	_, err := svc.Submit(context.Background(), input)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Solo se aceptan archivos PDF", fields["titulo"])
	assert.Equal(t, 0, up.calls)
	assert.Empty(t, repo.rows)
}

func TestSubmitRejectsOversizedFile(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{}
	svc := NewHomologacionService(repo, up, nil)

	input := validSubmit()
	input.Titulo.Bytes = make([]byte, maxTituloSize+1)

	_, err := svc.Submit(context.Background(), input)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "El archivo no puede superar los 10MB", fields["titulo"])
	assert.Equal(t, 0, up.calls)
}

func TestSubmitRejectsDuplicateEnProceso(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{}
	svc := NewHomologacionService(repo, up, nil)

	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validSubmit())
	assert.ErrorIs(t, err, ErrSolicitudEnProceso)
	assert.Equal(t, 1, up.calls, "second attempt must not upload")
	assert.Len(t, repo.rows, 1)
}

func TestSubmitAllowsNewRequestAfterTerminalState(t *testing.T) {
	repo := newFakeHomologacionRepo()
	svc := NewHomologacionService(repo, &fakeUploader{}, nil)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	_, err = svc.CambiarEstado(id, "RECHAZADO")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validSubmit())
	assert.NoError(t, err)
}

func TestSubmitUploadFailureAbortsBeforeInsert(t *testing.T) {
	repo := newFakeHomologacionRepo()
	up := &fakeUploader{fail: errors.New("storage down")}
	svc := NewHomologacionService(repo, up, nil)

	_, err := svc.Submit(context.Background(), validSubmit())
	require.Error(t, err)
	assert.Empty(t, repo.rows, "no record may exist after a failed upload")
}

func TestCrearMirrorsSubmitValidation(t *testing.T) {
	repo := newFakeHomologacionRepo()
	svc := NewHomologacionService(repo, &fakeUploader{}, nil)

	_, err := svc.Crear(dto.HomologacionRequest{
		DNI:      "30111222",
		Apellido: "Pérez",
		Nombre:   "Ana",
		Email:    "ana@mail.com",
	})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "titulo_url")

	id, err := svc.Crear(dto.HomologacionRequest{
		DNI:       "30111222",
		Apellido:  "Pérez",
		Nombre:    "Ana",
		Email:     "ana@mail.com",
		TituloURL: "https://cdn.example.com/titulos/t.pdf",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)
}

// ---------- tracking ----------

func TestConsultarRequiresAtLeastOneParameter(t *testing.T) {
	svc := NewHomologacionService(newFakeHomologacionRepo(), nil, nil)

	_, err := svc.Consultar("", "")
	assert.ErrorIs(t, err, ErrFaltanParametros)
}

func TestConsultarReturnsNilWhenNothingMatches(t *testing.T) {
	svc := NewHomologacionService(newFakeHomologacionRepo(), nil, nil)

	resp, err := svc.Consultar("30111222", "")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestConsultarCleansRawDNI(t *testing.T) {
	repo := newFakeHomologacionRepo()
	svc := NewHomologacionService(repo, &fakeUploader{}, nil)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	resp, err := svc.Consultar("30.111.222", "")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "PENDIENTE", resp.Estado)
}

// ---------- review / transitions ----------

func TestCambiarEstadoDirectToAprobadoStampsResolucion(t *testing.T) {
	repo := newFakeHomologacionRepo()
	prod := &fakeProducer{}
	svc := NewHomologacionService(repo, &fakeUploader{}, prod)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	// No ordering is enforced: PENDIENTE may jump straight to APROBADO.
	updated, err := svc.CambiarEstado(id, "APROBADO")
	require.NoError(t, err)
	assert.Equal(t, "APROBADO", updated.Estado)
	assert.NotNil(t, updated.FechaResolucion)
	assert.Contains(t, prod.keys, "homologacion.resuelta")
}

func TestCambiarEstadoStampsResolucionOnEnRevision(t *testing.T) {
	repo := newFakeHomologacionRepo()
	prod := &fakeProducer{}
	svc := NewHomologacionService(repo, &fakeUploader{}, prod)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	// fecha_resolucion is stamped even for the non-terminal EN_REVISION.
	updated, err := svc.CambiarEstado(id, "EN_REVISION")
	require.NoError(t, err)
	assert.Equal(t, "EN_REVISION", updated.Estado)
	assert.NotNil(t, updated.FechaResolucion)
	assert.NotContains(t, prod.keys, "homologacion.resuelta")
}

func TestCambiarEstadoAllowsBackwardTransition(t *testing.T) {
	repo := newFakeHomologacionRepo()
	svc := NewHomologacionService(repo, &fakeUploader{}, nil)

	id, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	_, err = svc.CambiarEstado(id, "APROBADO")
	require.NoError(t, err)

	updated, err := svc.CambiarEstado(id, "PENDIENTE")
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", updated.Estado)
}

func TestCambiarEstadoRejectsUnknownEstado(t *testing.T) {
	svc := NewHomologacionService(newFakeHomologacionRepo(), nil, nil)

	_, err := svc.CambiarEstado(1, "ARCHIVADO")
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestCambiarEstadoMissingRequest(t *testing.T) {
	svc := NewHomologacionService(newFakeHomologacionRepo(), nil, nil)

	_, err := svc.CambiarEstado(99, "APROBADO")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
