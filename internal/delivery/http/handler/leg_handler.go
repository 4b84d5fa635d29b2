package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/utils"
	"github.com/roadbook-microservice/internal/pkg/validator"
	"github.com/roadbook-microservice/internal/usecase"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// LegHandler - handlers for transport legs, race metadata and accommodations
type LegHandler struct {
	legUC  *usecase.LegUseCase
	logger *zap.Logger
}

// NewLegHandler - constructor for LegHandler
func NewLegHandler(legUC *usecase.LegUseCase, logger *zap.Logger) *LegHandler {
	return &LegHandler{
		legUC:  legUC,
		logger: logger,
	}
}

// ListLegs godoc
// @Summary List transport legs of an event
// @Description Returns all transport legs of an event with occupants and intermediate stops, ordered by departure.
// @Tags Legs
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TransportLeg}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/legs [get]
func (h *LegHandler) ListLegs(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	legs, err := h.legUC.List(c.Context(), eventID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, legs, &utils.Meta{Total: len(legs)})
}

// CreateLeg godoc
// @Summary Create a transport leg
// @Description Creates a leg with its occupants and stops, then triggers a schedule recompute.
// @Tags Legs
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param request body dto.LegRequest true "Leg to create"
// @Success 200 {object} utils.SuccessResponse{data=domain.TransportLeg}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/legs [post]
func (h *LegHandler) CreateLeg(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	var req dto.LegRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	leg, err := h.legUC.Create(c.Context(), eventID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, leg, nil)
}

// UpdateLeg godoc
// @Summary Update a transport leg
// @Description Replaces a leg with its occupants and stops, then triggers a schedule recompute.
// @Tags Legs
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param leg_id path string true "Leg ID"
// @Param request body dto.LegRequest true "New leg state"
// @Success 200 {object} utils.SuccessResponse{data=domain.TransportLeg}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/legs/{leg_id} [put]
func (h *LegHandler) UpdateLeg(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}
	legID, err := uuid.Parse(c.Params("leg_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.LegRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	leg, err := h.legUC.Update(c.Context(), eventID, legID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, leg, nil)
}

// DeleteLeg godoc
// @Summary Delete a transport leg
// @Description Removes a leg with its occupants and stops, then triggers a schedule recompute.
// @Tags Legs
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param leg_id path string true "Leg ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/legs/{leg_id} [delete]
func (h *LegHandler) DeleteLeg(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}
	legID, err := uuid.Parse(c.Params("leg_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.legUC.Delete(c.Context(), eventID, legID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": legID}, nil)
}

// GetRaceDayInfo godoc
// @Summary Get race metadata of an event
// @Description Returns the per-event race metadata (accreditation, meetings, starts, presentation, finish). Every field is optional.
// @Tags RaceInfo
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.RaceDayInfo}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/race-info [get]
func (h *LegHandler) GetRaceDayInfo(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	info, err := h.legUC.GetRaceDayInfo(c.Context(), eventID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, info, nil)
}

// UpsertRaceDayInfo godoc
// @Summary Create or replace race metadata of an event
// @Description Upserts the race metadata, then triggers a schedule recompute.
// @Tags RaceInfo
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param request body dto.RaceDayInfoRequest true "Race metadata"
// @Success 200 {object} utils.SuccessResponse{data=domain.RaceDayInfo}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/race-info [put]
func (h *LegHandler) UpsertRaceDayInfo(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	var req dto.RaceDayInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	info, err := h.legUC.UpsertRaceDayInfo(c.Context(), eventID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, info, nil)
}

// GetAccommodations godoc
// @Summary List accommodations of an event
// @Description Returns the lodging records of an event; the first non-stopover one drives the hotel-departure derivation.
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Accommodation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/accommodations [get]
func (h *LegHandler) GetAccommodations(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	accommodations, err := h.legUC.GetAccommodations(c.Context(), eventID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, accommodations, &utils.Meta{Total: len(accommodations)})
}
