package controller

import (
	"errors"
	"strconv"

	"ceo-diagnostic-be/internal/dto"
	"ceo-diagnostic-be/internal/pkg/serverutils"
	"ceo-diagnostic-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetAllSessions(ctx *fiber.Ctx) error
	GetSessionDetail(ctx *fiber.Ctx) error
	GetStats(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{
		service: service,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/sessions", c.GetAllSessions)
	h.Get("/sessions/:id", c.GetSessionDetail)
	h.Get("/stats", c.GetStats)
}

func (c *adminController) GetAllSessions(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	query := dto.AdminListQuery{
		Page:          page,
		Limit:         limit,
		CompletedOnly: ctx.Query("completed", "") == "true",
		Email:         ctx.Query("email", ""),
		Model:         ctx.Query("model", ""),
	}

	sessions, total, err := c.service.ListSessions(ctx.Context(), query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Session list", fiber.Map{
		"sessions": sessions,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}))
}

func (c *adminController) GetSessionDetail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	session, err := c.service.GetSession(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Session detail", session))
}

func (c *adminController) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Diagnostic stats", stats))
}
