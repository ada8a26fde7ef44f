package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"raspadinha/internal/auth"
	"raspadinha/internal/errors"
	"raspadinha/internal/model"
	"raspadinha/internal/service"
)

// ScratchChanceHandler handles scratch chance endpoints.
type ScratchChanceHandler struct {
	chanceService service.ChanceService
}

// NewScratchChanceHandler creates a new scratch chance handler.
func NewScratchChanceHandler(chanceService service.ChanceService) *ScratchChanceHandler {
	return &ScratchChanceHandler{chanceService: chanceService}
}

// BuyScratchChanceRequest represents a scratch chance purchase.
type BuyScratchChanceRequest struct {
	ScratchCardID string `json:"scratch_card_id" validate:"required,uuid"`
}

// ChanceResponse wraps a single chance.
type ChanceResponse struct {
	Chance *model.ScratchChance `json:"chance"`
}

// ChanceListResponse is a page of the caller's chances.
type ChanceListResponse struct {
	Chances []model.ScratchChance `json:"chances"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// BuyScratchChance godoc
// @Summary Buy a scratch chance
// @Description Issues one chance for the given scratch card. The prize and the grid are decided at purchase.
// @Tags scratch-chances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BuyScratchChanceRequest true "Scratch card"
// @Success 200 {object} ChanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /buy-scratch-chance [post]
func (h *ScratchChanceHandler) BuyScratchChance(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(c, err)
	}

	var req BuyScratchChanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if req.ScratchCardID == "" {
		return fail(c, errors.ErrMissingScratchCardID)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "scratch_card_id must be a valid uuid",
			Code:  "VALIDATION_ERROR",
		})
	}

	cardID, err := uuid.Parse(req.ScratchCardID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "scratch_card_id must be a valid uuid",
			Code:  "VALIDATION_ERROR",
		})
	}

	chance, err := h.chanceService.BuyScratchChance(c.Request().Context(), userID, cardID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, ChanceResponse{Chance: chance})
}

// RevealChance godoc
// @Summary Reveal a scratch chance
// @Description Marks the caller's chance as scratched. Repeated calls return the same chance.
// @Tags scratch-chances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chance ID"
// @Success 200 {object} ChanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /scratch-chances/{id}/reveal [post]
func (h *ScratchChanceHandler) RevealChance(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(c, err)
	}

	chanceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid chance id",
			Code:  "INVALID_UUID",
		})
	}

	chance, err := h.chanceService.RevealChance(c.Request().Context(), userID, chanceID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, ChanceResponse{Chance: chance})
}

// ListChances godoc
// @Summary List my scratch chances
// @Tags scratch-chances
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} ChanceListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /scratch-chances [get]
func (h *ScratchChanceHandler) ListChances(c echo.Context) error {
	userID, err := auth.UserIDFrom(c)
	if err != nil {
		return fail(c, err)
	}

	var limit, offset int
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "limit and offset must be integers",
			Code:  "VALIDATION_ERROR",
		})
	}

	chances, err := h.chanceService.ListChances(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	if chances == nil {
		chances = []model.ScratchChance{}
	}
	limit, offset = service.PageBounds(limit, offset)

	return c.JSON(http.StatusOK, ChanceListResponse{
		Chances: chances,
		Limit:   limit,
		Offset:  offset,
	})
}
