package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/remaep/registry_service/internal/helper/utils"
	"github.com/remaep/registry_service/internal/services"
)

type MatriculaHandler struct {
	svc services.RegistryService
}

func NewMatriculaHandler(svc services.RegistryService) *MatriculaHandler {
	return &MatriculaHandler{svc: svc}
}

func (h *MatriculaHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/matriculas/search", h.Search)
}

// GET /api/matriculas/search?dni=
// Three distinct outcomes: 400 malformed DNI, 404 no credential on file,
// 500 registry unavailable. An empty registry answer is not an error.
func (h *MatriculaHandler) Search(ctx *fiber.Ctx) error {
	results, err := h.svc.BuscarPorDNI(ctx.Query("dni"))
	if err != nil {
		if errors.Is(err, services.ErrDNIInvalido) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Ingrese un DNI válido (7 u 8 dígitos)")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error de conexión con el Registro Nacional")
	}

	if len(results) == 0 {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "No se encontró ninguna matrícula vinculada a este DNI")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, results)
}
