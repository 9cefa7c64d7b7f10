package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// AutomationHandler maneja la regla de automatización del usuario y su ejecución.
type AutomationHandler struct {
	engine *automation.Engine
}

// NewAutomationHandler construye el handler de automatización.
func NewAutomationHandler(engine *automation.Engine) *AutomationHandler {
	return &AutomationHandler{engine: engine}
}

// GetRules godoc
// @Summary      Consultar la regla de automatización del usuario
// @Tags         automation
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  entity.AutomationRule
// @Router       /api/automation/rules [get]
func (h *AutomationHandler) GetRules(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
	}
	rule, err := h.engine.GetRules(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Sin regla configurada: objeto vacío, no 404.
	if rule == nil {
		return c.JSON(struct{}{})
	}
	return c.JSON(rule)
}

// SetRules godoc
// @Summary      Configurar la regla de automatización (sobrescribe la anterior)
// @Tags         automation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SetRulesRequest  true  "triggers, conditions, actions, active"
// @Success      200   {object}  entity.AutomationRule
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/automation/rules [post]
func (h *AutomationHandler) SetRules(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
	}
	var in dto.SetRulesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	rule := &entity.AutomationRule{
		UserID:     user.ID,
		Triggers:   in.Triggers,
		Conditions: in.Conditions,
		Actions:    in.Actions,
		Active:     active,
	}
	out, err := h.engine.SetRules(c.Context(), rule)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Execute godoc
// @Summary      Ejecutar la regla del usuario contra sus leads
// @Tags         automation
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.ExecuteResponse
// @Router       /api/automation/execute [post]
func (h *AutomationHandler) Execute(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
	}
	report, err := h.engine.Execute(c.Context(), user.ID)
	if err != nil {
		// Ejecutar sin regla activa no es un error para el cliente.
		if errors.Is(err, automation.ErrNoActiveRule) {
			return c.JSON(dto.MessageResponse{Message: "no hay reglas de automatización activas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ExecuteResponse{
		Success:   true,
		Processed: report.Processed,
		Results:   report.Results,
	})
}
