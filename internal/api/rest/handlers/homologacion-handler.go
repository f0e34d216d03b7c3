package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/remaep/registry_service/internal/dto"
	"github.com/remaep/registry_service/internal/helper/utils"
	"github.com/remaep/registry_service/internal/services"
	pkgutils "github.com/remaep/registry_service/pkg/utils"
)

const maxTituloSize = 10 * 1024 * 1024 // 10MB

type HomologacionHandler struct {
	svc services.HomologacionService
}

func NewHomologacionHandler(svc services.HomologacionService) *HomologacionHandler {
	return &HomologacionHandler{svc: svc}
}

func (h *HomologacionHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Full submission flow (multipart, document included)
	api.Post("/homologaciones", h.Submit)

	// JSON mirror + applicant tracking
	api.Post("/homologacion", h.Crear)
	api.Get("/homologacion", h.Consultar)
}

// POST /api/homologaciones
// form-data: dni, apellido, nombre, email, telefono?, titulo=<pdf>
func (h *HomologacionHandler) Submit(ctx *fiber.Ctx) error {
	input := dto.HomologacionSubmit{
		DNI:      ctx.FormValue("dni"),
		Apellido: ctx.FormValue("apellido"),
		Nombre:   ctx.FormValue("nombre"),
		Email:    ctx.FormValue("email"),
		Telefono: ctx.FormValue("telefono"),
	}

	if file, err := ctx.FormFile("titulo"); err == nil {
		if file.Size > maxTituloSize {
			return utils.ResponseFieldErrors(ctx, map[string]string{
				"titulo": "El archivo no puede superar los 10MB",
			})
		}

		f, err := file.Open()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "No se pudo leer el archivo adjunto")
		}
		b, err := pkgutils.ReadAllLimit(f, maxTituloSize)
		f.Close()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "No se pudo leer el archivo adjunto")
		}

		input.Titulo = dto.HomologacionFile{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Bytes:       b,
		}
	}

	id, err := h.svc.Submit(ctx.Context(), input)
	if err != nil {
		return h.submissionError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.HomologacionSubmitResponse{
		Success: true,
		Message: "Solicitud creada exitosamente",
		ID:      id,
	})
}

// POST /api/homologacion
// JSON body with titulo_url: the server-side validation mirror of Submit.
func (h *HomologacionHandler) Crear(ctx *fiber.Ctx) error {
	var body dto.HomologacionRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Datos inválidos")
	}

	id, err := h.svc.Crear(body)
	if err != nil {
		return h.submissionError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.HomologacionSubmitResponse{
		Success: true,
		Message: "Solicitud creada exitosamente",
		ID:      id,
	})
}

// GET /api/homologacion?dni=&email=
// Returns at most one request as {id, estado, created_at}; data is null when
// nothing matches.
func (h *HomologacionHandler) Consultar(ctx *fiber.Ctx) error {
	resp, err := h.svc.Consultar(ctx.Query("dni"), ctx.Query("email"))
	if err != nil {
		if errors.Is(err, services.ErrFaltanParametros) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Faltan parámetros de búsqueda")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error al consultar solicitud")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *HomologacionHandler) submissionError(ctx *fiber.Ctx, err error) error {
	var fields services.FieldErrors
	if errors.As(err, &fields) {
		return utils.ResponseFieldErrors(ctx, fields)
	}
	if errors.Is(err, services.ErrSolicitudEnProceso) {
		return utils.ResponseError(ctx, fiber.StatusConflict, "Ya existe una solicitud en proceso para este DNI")
	}
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error al procesar la solicitud")
}
