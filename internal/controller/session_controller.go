package controller

import (
	"errors"

	"ceo-diagnostic-be/internal/dto"
	"ceo-diagnostic-be/internal/pkg/serverutils"
	"ceo-diagnostic-be/internal/service"
	"ceo-diagnostic-be/pkg/wizard"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Catalog(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateScore(ctx *fiber.Ctx) error
	UpdateROI(ctx *fiber.Ctx) error
	Advance(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/diagnostic")
	h.Get("catalog", c.Catalog)
	h.Post("session", c.Start)
	h.Get("session/:id", c.Show)
	h.Patch("session/:id/score", c.UpdateScore)
	h.Patch("session/:id/roi", c.UpdateROI)
	h.Post("session/:id/advance", c.Advance)
	h.Post("session/:id/submit", c.Submit)
}

func (c *sessionController) Catalog(ctx *fiber.Ctx) error {
	res := c.sessionService.GetCatalog()
	return ctx.JSON(serverutils.SuccessResponse("Success show catalog", res))
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.StartSession(ctx.Context(), &req)
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) UpdateScore(ctx *fiber.Ctx) error {
	var req dto.UpdateScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.UpdateScore(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update score", res))
}

func (c *sessionController) UpdateROI(ctx *fiber.Ctx) error {
	var req dto.UpdateROIRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.UpdateROIInput(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update calculator input", res))
}

func (c *sessionController) Advance(ctx *fiber.Ctx) error {
	res, err := c.sessionService.AdvanceToROI(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success advance session", res))
}

func (c *sessionController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.SubmitResults(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return mapWizardError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit results", res))
}

// mapWizardError translates service errors into HTTP statuses. Stage
// guard violations are conflicts, not bad requests: the payload was
// fine, the session just is not where the caller thinks it is.
func mapWizardError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrMissingROIFields):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrScoresIncomplete),
		errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadySubmitting):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}
