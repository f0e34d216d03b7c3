package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/remaep/registry_service/internal/api/rest/middleware"
	"github.com/remaep/registry_service/internal/dto"
	"github.com/remaep/registry_service/internal/helper"
	"github.com/remaep/registry_service/internal/helper/utils"
	"github.com/remaep/registry_service/internal/services"
	"gorm.io/gorm"
)

type AdminHandler struct {
	homSvc  services.HomologacionService
	regSvc  services.RegistryService
	authSvc services.AuthService
	auth    helper.Auth
}

func NewAdminHandler(
	homSvc services.HomologacionService,
	regSvc services.RegistryService,
	authSvc services.AuthService,
	auth helper.Auth,
) *AdminHandler {
	return &AdminHandler{
		homSvc:  homSvc,
		regSvc:  regSvc,
		authSvc: authSvc,
		auth:    auth,
	}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App) {
	admin := app.Group("/api/admin")

	admin.Post("/login", h.Login)
	admin.Post("/logout", h.Logout)

	admin.Use(middleware.AuthMiddleware(h.auth))
	admin.Get("/session", h.Session)
	admin.Get("/homologaciones", h.ListHomologaciones)
	admin.Patch("/homologaciones/:id/estado", h.CambiarEstado)
	admin.Get("/estadisticas", h.Estadisticas)
}

func (h *AdminHandler) Login(ctx *fiber.Ctx) error {
	var body dto.AdminLogin
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	admin, err := h.authSvc.Login(body)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	token, err := h.auth.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(12 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		Token: token,
		Email: admin.Email,
	})
}

func (h *AdminHandler) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "sesión cerrada")
}

// GET /api/admin/session
// Session-presence check for the admin shell: 401 from the middleware when
// the token is missing or stale, the claims otherwise.
func (h *AdminHandler) Session(ctx *fiber.Ctx) error {
	session, err := h.auth.GetCurrentSession(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, session)
}

// GET /api/admin/homologaciones?filtro=
func (h *AdminHandler) ListHomologaciones(ctx *fiber.Ctx) error {
	rows, err := h.homSvc.ListAll(ctx.Query("filtro"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error al listar solicitudes")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rows)
}

// PATCH /api/admin/homologaciones/:id/estado
// The response carries the updated row; the dashboard re-fetches the list
// and the counters rather than patching local state.
func (h *AdminHandler) CambiarEstado(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Solicitud inválida")
	}

	var body dto.CambioEstadoRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Estado inválido")
	}

	updated, err := h.homSvc.CambiarEstado(uint(id), body.Estado)
	if err != nil {
		if errors.Is(err, services.ErrEstadoInvalido) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Estado inválido")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "Solicitud no encontrada")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error al actualizar la solicitud")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, updated)
}

// GET /api/admin/estadisticas
func (h *AdminHandler) Estadisticas(ctx *fiber.Ctx) error {
	stats, err := h.regSvc.Estadisticas()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Error al obtener estadísticas")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}
