package services

import (
	"time"

	"github.com/remaep/registry_service/internal/dto"
	"github.com/remaep/registry_service/internal/repository"
	"github.com/remaep/registry_service/pkg/utils"
)

type RegistryService interface {
	// BuscarPorDNI strips non-digits from the raw input, validates it and
	// returns every credential for that DNI in this registry, ACTIVO first.
	// An empty slice is a valid not-found outcome, distinct from
	// ErrDNIInvalido and from a query failure.
	BuscarPorDNI(dniRaw string) ([]dto.MatriculaResponse, error)

	// Estadisticas returns the precomputed rollup plus the live count of
	// PENDIENTE requests.
	Estadisticas() (*dto.EstadisticasResponse, error)
}

type registryService struct {
	matriculaRepo    repository.MatriculaRepository
	estadisticasRepo repository.EstadisticasRepository
	homologacionRepo repository.HomologacionRepository
}

func NewRegistryService(
	matriculaRepo repository.MatriculaRepository,
	estadisticasRepo repository.EstadisticasRepository,
	homologacionRepo repository.HomologacionRepository,
) RegistryService {
	return &registryService{
		matriculaRepo:    matriculaRepo,
		estadisticasRepo: estadisticasRepo,
		homologacionRepo: homologacionRepo,
	}
}

func (s *registryService) BuscarPorDNI(dniRaw string) ([]dto.MatriculaResponse, error) {
	dni := utils.CleanDigits(dniRaw)
	if !utils.ValidateDNI(dni) {
		return nil, ErrDNIInvalido
	}

	rows, err := s.matriculaRepo.FindByDNI(dni)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MatriculaResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.MatriculaResponse{
			ID:               m.ID,
			DNIAlumno:        m.DNIAlumno,
			Apellido:         m.Apellido,
			Nombre:           m.Nombre,
			Curso:            m.Curso,
			Estado:           string(m.Estado),
			FechaVencimiento: m.FechaVencimiento.Format(time.RFC3339),
			FotoURL:          m.FotoURL,
			RegistroID:       m.RegistroID,
			InstitutionID:    m.InstitutionID,
		})
	}
	return out, nil
}

func (s *registryService) Estadisticas() (*dto.EstadisticasResponse, error) {
	resumen, err := s.estadisticasRepo.Resumen()
	if err != nil {
		return nil, err
	}

	pendientes, err := s.homologacionRepo.CountPendientes()
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasResponse{
		TotalMatriculas: resumen.TotalMatriculas,
		Activas:         resumen.Activas,
		Pendientes:      pendientes,
	}, nil
}
