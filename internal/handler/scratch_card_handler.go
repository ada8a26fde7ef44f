package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"raspadinha/internal/errors"
	"raspadinha/internal/service"
)

// ScratchCardHandler serves the public scratch card catalog.
type ScratchCardHandler struct {
	catalogService service.CatalogService
}

// NewScratchCardHandler creates a new scratch card handler.
func NewScratchCardHandler(catalogService service.CatalogService) *ScratchCardHandler {
	return &ScratchCardHandler{catalogService: catalogService}
}

// GetScratchCard godoc
// @Summary Get a scratch card
// @Description Public view of a scratch card, its prizes and the remaining cards of the active batch.
// @Tags scratch-cards
// @Produce json
// @Param id path string true "Scratch card ID"
// @Success 200 {object} service.ScratchCardView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /scratch-cards/{id} [get]
func (h *ScratchCardHandler) GetScratchCard(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid scratch card id",
			Code:  "INVALID_UUID",
		})
	}

	view, err := h.catalogService.GetScratchCard(c.Request().Context(), cardID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, view)
}
