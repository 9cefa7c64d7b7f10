package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/application/usecase"
	"github.com/tu-usuario/crm-pro/internal/domain"
)

// ApiKeyHandler maneja las API keys del usuario autenticado.
type ApiKeyHandler struct {
	uc *usecase.ApiKeyUseCase
}

// NewApiKeyHandler construye el handler de API keys.
func NewApiKeyHandler(uc *usecase.ApiKeyUseCase) *ApiKeyHandler {
	return &ApiKeyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear API key (el secreto solo se devuelve una vez)
// @Tags         apikeys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateApiKeyRequest  true  "description, permissions opcional"
// @Success      201   {object}  dto.ApiKeyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/apikeys [post]
func (h *ApiKeyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApiKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUser(c).ID, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar API keys propias (sin secreto)
// @Tags         apikeys
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}  dto.ApiKeyResponse
// @Router       /api/apikeys [get]
func (h *ApiKeyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUser(c).ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar una API key propia
// @Tags         apikeys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "api key id"
// @Param        body  body  dto.SetApiKeyActiveRequest  true  "active"
// @Success      200   {object}  dto.ApiKeyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/apikeys/{id}/active [put]
func (h *ApiKeyHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetApiKeyActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetActive(c.Context(), GetUser(c).ID, c.Params("id"), in.Active)
	if err != nil {
		return apiKeyError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una API key propia
// @Tags         apikeys
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "api key id"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/apikeys/{id} [delete]
func (h *ApiKeyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUser(c).ID, c.Params("id")); err != nil {
		return apiKeyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func apiKeyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "la API key no existe"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OWNERSHIP_DENIED", Message: "la API key pertenece a otro usuario"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
