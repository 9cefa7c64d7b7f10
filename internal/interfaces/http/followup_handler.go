package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/application/usecase"
	"github.com/tu-usuario/crm-pro/internal/domain"
)

// FollowupHandler maneja los seguimientos agendados sobre leads.
type FollowupHandler struct {
	uc *usecase.FollowupUseCase
}

// NewFollowupHandler construye el handler de seguimientos.
func NewFollowupHandler(uc *usecase.FollowupUseCase) *FollowupHandler {
	return &FollowupHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar seguimiento manual sobre un lead propio
// @Tags         followups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateFollowupRequest  true  "lead_id, scheduled_at, notes"
// @Success      201   {object}  dto.FollowupResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/followups [post]
func (h *FollowupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFollowupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LeadID == "" || in.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_id y scheduled_at son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetUser(c).ID, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "el lead no existe"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OWNERSHIP_DENIED", Message: "el lead pertenece a otro usuario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar seguimientos propios
// @Tags         followups
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}  dto.FollowupResponse
// @Router       /api/followups [get]
func (h *FollowupHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByUser(c.Context(), GetUser(c).ID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByLead godoc
// @Summary      Listar seguimientos de un lead
// @Tags         followups
// @Produce      json
// @Security     BearerAuth
// @Param        leadId  path  string  true  "lead id"
// @Success      200   {array}  dto.FollowupResponse
// @Router       /api/followups/lead/{leadId} [get]
func (h *FollowupHandler) ListByLead(c *fiber.Ctx) error {
	out, err := h.uc.ListByLead(c.Context(), c.Params("leadId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Marcar seguimiento como completado
// @Tags         followups
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "followup id"
// @Success      200   {object}  dto.FollowupResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/followups/{id}/complete [put]
func (h *FollowupHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return followupError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar seguimiento
// @Tags         followups
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "followup id"
// @Success      204   "sin contenido"
// @Router       /api/followups/{id} [delete]
func (h *FollowupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return followupError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func followupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "el seguimiento no existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
