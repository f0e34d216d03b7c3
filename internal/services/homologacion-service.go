package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/remaep/registry_service/internal/domain"
	"github.com/remaep/registry_service/internal/dto"
	"github.com/remaep/registry_service/internal/helper"
	"github.com/remaep/registry_service/internal/interfaces"
	"github.com/remaep/registry_service/internal/repository"
	"github.com/remaep/registry_service/pkg/utils"
	"gorm.io/gorm"
)

const (
	maxTituloSize = 10 * 1024 * 1024 // 10MB
	tituloFolder  = "titulos/homologaciones"
)

type HomologacionService interface {
	// Submit runs the full public submission: validate, upload the PDF,
	// insert the PENDIENTE record, return its id. Validation failures return
	// FieldErrors before any upload or insert happens.
	Submit(ctx context.Context, input dto.HomologacionSubmit) (uint, error)

	// Crear mirrors Submit for callers that already uploaded the document
	// and only hold its URL.
	Crear(input dto.HomologacionRequest) (uint, error)

	// Consultar returns the most recent request matching dni and/or email,
	// or nil when none exists.
	Consultar(dniRaw, email string) (*dto.HomologacionEstadoResponse, error)

	// Admin surface.
	ListAll(filtro string) ([]dto.HomologacionAdminResponse, error)
	CambiarEstado(id uint, estado string) (*dto.HomologacionAdminResponse, error)
}

type homologacionService struct {
	repo     repository.HomologacionRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
}

func NewHomologacionService(
	repo repository.HomologacionRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) HomologacionService {
	return &homologacionService{
		repo:     repo,
		uploader: uploader,
		producer: producer,
	}
}

func (s *homologacionService) Submit(ctx context.Context, input dto.HomologacionSubmit) (uint, error) {
	if s.uploader == nil {
		return 0, errors.New("uploader is not configured")
	}

	dni := strings.TrimSpace(input.DNI)
	apellido := strings.TrimSpace(input.Apellido)
	nombre := strings.TrimSpace(input.Nombre)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	fields := FieldErrors{}
	if !utils.ValidateDNI(dni) {
		fields["dni"] = "DNI inválido (7 u 8 dígitos)"
	}
	if apellido == "" {
		fields["apellido"] = "El apellido es obligatorio"
	}
	if nombre == "" {
		fields["nombre"] = "El nombre es obligatorio"
	}
	if !utils.ValidateEmail(email) {
		fields["email"] = "Email inválido"
	}
	switch {
	case len(input.Titulo.Bytes) == 0:
		fields["titulo"] = "Debe adjuntar su título en formato PDF"
	case input.Titulo.ContentType != "application/pdf":
		fields["titulo"] = "Solo se aceptan archivos PDF"
	case len(input.Titulo.Bytes) > maxTituloSize:
		fields["titulo"] = "El archivo no puede superar los 10MB"
	}
	if len(fields) > 0 {
		return 0, fields
	}

	if err := s.checkEnProceso(dni); err != nil {
		return 0, err
	}

	// Upload first; an insert failure after a successful upload leaves an
	// orphaned file behind, never an orphaned record.
	filename := fmt.Sprintf("%d_%s.pdf", time.Now().UnixMilli(), dni)
	tituloURL, err := s.uploader.UploadBytes(ctx, tituloFolder, filename, input.Titulo.Bytes)
	if err != nil {
		return 0, fmt.Errorf("upload titulo failed: %w", err)
	}

	return s.insertar(&domain.Homologacion{
		DNI:       dni,
		Apellido:  utils.SanitizeString(apellido),
		Nombre:    utils.SanitizeString(nombre),
		Email:     email,
		Telefono:  utils.CleanDigits(input.Telefono),
		TituloURL: tituloURL,
		Estado:    domain.HomologacionPendiente,
	})
}

func (s *homologacionService) Crear(input dto.HomologacionRequest) (uint, error) {
	dni := strings.TrimSpace(input.DNI)
	apellido := strings.TrimSpace(input.Apellido)
	nombre := strings.TrimSpace(input.Nombre)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	fields := FieldErrors{}
	if !utils.ValidateDNI(dni) {
		fields["dni"] = "DNI inválido (7 u 8 dígitos)"
	}
	if apellido == "" {
		fields["apellido"] = "El apellido es obligatorio"
	}
	if nombre == "" {
		fields["nombre"] = "El nombre es obligatorio"
	}
	if !utils.ValidateEmail(email) {
		fields["email"] = "Email inválido"
	}
	if strings.TrimSpace(input.TituloURL) == "" {
		fields["titulo_url"] = "El título es requerido"
	}
	if len(fields) > 0 {
		return 0, fields
	}

	if err := s.checkEnProceso(dni); err != nil {
		return 0, err
	}

	return s.insertar(&domain.Homologacion{
		DNI:       dni,
		Apellido:  utils.SanitizeString(apellido),
		Nombre:    utils.SanitizeString(nombre),
		Email:     email,
		Telefono:  utils.CleanDigits(input.Telefono),
		TituloURL: strings.TrimSpace(input.TituloURL),
		Estado:    domain.HomologacionPendiente,
	})
}

// checkEnProceso is a read-then-write pre-check; the partial unique index on
// homologaciones closes the race window it leaves open.
func (s *homologacionService) checkEnProceso(dni string) error {
	existing, err := s.repo.FindEnProcesoByDNI(dni)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return ErrSolicitudEnProceso
	}
	return nil
}

func (s *homologacionService) insertar(h *domain.Homologacion) (uint, error) {
	if err := s.repo.Create(h); err != nil {
		if helper.IsDuplicateEnProceso(err) {
			return 0, ErrSolicitudEnProceso
		}
		return 0, err
	}

	if s.producer != nil {
		payload := fmt.Sprintf(
			`{"id":%d,"dni":"%s","email":"%s","estado":"%s"}`,
			h.ID, h.DNI, h.Email, h.Estado,
		)
		if err := s.producer.PublishMessage([]byte("homologacion.solicitada"), []byte(payload)); err != nil {
			log.Printf("publish homologacion.solicitada error: %v", err)
		}
	}

	return h.ID, nil
}

func (s *homologacionService) Consultar(dniRaw, email string) (*dto.HomologacionEstadoResponse, error) {
	dni := utils.CleanDigits(dniRaw)
	email = strings.TrimSpace(strings.ToLower(email))

	if dni == "" && email == "" {
		return nil, ErrFaltanParametros
	}

	h, err := s.repo.FindUltima(dni, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &dto.HomologacionEstadoResponse{
		ID:        h.ID,
		Estado:    string(h.Estado),
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *homologacionService) ListAll(filtro string) ([]dto.HomologacionAdminResponse, error) {
	rows, err := s.repo.ListAll(strings.TrimSpace(filtro))
	if err != nil {
		return nil, err
	}

	out := make([]dto.HomologacionAdminResponse, 0, len(rows))
	for i := range rows {
		out = append(out, adminResponse(&rows[i]))
	}
	return out, nil
}

// CambiarEstado applies an admin transition. Any state may be set to any
// other state; the target only has to be one of the four known values.
// fecha_resolucion is stamped on every transition, EN_REVISION included.
func (s *homologacionService) CambiarEstado(id uint, estado string) (*dto.HomologacionAdminResponse, error) {
	estado = strings.TrimSpace(strings.ToUpper(estado))
	if !domain.EstadoValido(estado) {
		return nil, ErrEstadoInvalido
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	h, err := s.repo.CambiarEstado(id, domain.HomologacionEstado(estado))
	if err != nil {
		return nil, err
	}

	if s.producer != nil && !h.Estado.EnProceso() {
		payload := fmt.Sprintf(
			`{"id":%d,"dni":"%s","email":"%s","estado":"%s"}`,
			h.ID, h.DNI, h.Email, h.Estado,
		)
		if err := s.producer.PublishMessage([]byte("homologacion.resuelta"), []byte(payload)); err != nil {
			log.Printf("publish homologacion.resuelta error: %v", err)
		}
	}

	resp := adminResponse(h)
	return &resp, nil
}

func adminResponse(h *domain.Homologacion) dto.HomologacionAdminResponse {
	var resolucion *string
	if h.FechaResolucion != nil {
		s := h.FechaResolucion.Format(time.RFC3339)
		resolucion = &s
	}

	return dto.HomologacionAdminResponse{
		ID:              h.ID,
		DNI:             h.DNI,
		Apellido:        h.Apellido,
		Nombre:          h.Nombre,
		Email:           h.Email,
		Telefono:        h.Telefono,
		TituloURL:       h.TituloURL,
		Estado:          string(h.Estado),
		CreatedAt:       h.CreatedAt.Format(time.RFC3339),
		FechaResolucion: resolucion,
	}
}
