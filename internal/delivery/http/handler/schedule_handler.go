package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/utils"
	"github.com/roadbook-microservice/internal/pkg/validator"
	"github.com/roadbook-microservice/internal/usecase"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ScheduleHandler - handlers for the derived schedule and its entries
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
	syncUC     *usecase.SyncUseCase
	logger     *zap.Logger
}

// NewScheduleHandler - constructor for ScheduleHandler
func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase, syncUC *usecase.SyncUseCase, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUC: scheduleUC,
		syncUC:     syncUC,
		logger:     logger,
	}
}

// GetSchedule godoc
// @Summary Get the derived operational schedule
// @Description Returns the per-day schedule for an event, merging derived entries with persisted manual and overridden ones. Team view groups same-time vehicle movements; individual view filters to the person's legs.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param view query string false "View mode (team or individual)" default(team)
// @Param person_id query string false "Person ID, required for individual view"
// @Param session_id query string false "Editing session ID, activates session exclusions and bypasses the cache"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule [get]
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	view := usecase.ScheduleView{Mode: usecase.ViewMode(c.Query("view", string(usecase.ViewTeam)))}
	if raw := c.Query("person_id"); raw != "" {
		personID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		view.PersonID = &personID
	}

	sessionID := c.Query("session_id")

	resp, cached, err := h.scheduleUC.GetSchedule(c.Context(), eventID, view, sessionID)
	if err != nil {
		return utils.SendError(c, err)
	}

	total := 0
	for _, day := range resp.Days {
		total += len(day.Entries)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:  total,
		Cached: cached,
	})
}

// CreateEntry godoc
// @Summary Create a manual schedule entry
// @Description Adds a user-authored entry into the given day bucket. Manual entries persist immediately and always survive re-derivation.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param request body dto.ManualEntryRequest true "Entry to create"
// @Success 200 {object} utils.SuccessResponse{data=dto.EntryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule/entries [post]
func (h *ScheduleHandler) CreateEntry(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	var req dto.ManualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.scheduleUC.CreateManualEntry(c.Context(), eventID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// UpdateEntry godoc
// @Summary Edit a schedule entry
// @Description Updates an entry's time, description or category. A time edit on an entry derived from a transport leg writes the quarter-hour rounded time back to the source leg or stop.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param entry_id path string true "Entry ID"
// @Param request body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse{data=dto.EntryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule/entries/{entry_id} [put]
func (h *ScheduleHandler) UpdateEntry(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}
	entryID := c.Params("entry_id")
	if entryID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.syncUC.UpdateEntry(c.Context(), eventID, entryID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// DeleteEntry godoc
// @Summary Delete a schedule entry
// @Description Removes a manual entry permanently. Deleting an auto-generated entry suppresses it for the editing session only; it reappears in a fresh session.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param entry_id path string true "Entry ID"
// @Param session_id query string false "Editing session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule/entries/{entry_id} [delete]
func (h *ScheduleHandler) DeleteEntry(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}
	entryID := c.Params("entry_id")
	if entryID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.syncUC.DeleteEntry(c.Context(), eventID, entryID, c.Query("session_id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": entryID}, nil)
}

// RestoreEntry godoc
// @Summary Restore a deleted auto-generated entry
// @Description Lifts the session suppression of a deleted auto-generated entry so the next derivation reintroduces it.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param entry_id path string true "Entry ID"
// @Param session_id query string true "Editing session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule/entries/{entry_id}/restore [post]
func (h *ScheduleHandler) RestoreEntry(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}
	entryID := c.Params("entry_id")
	if entryID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.syncUC.RestoreEntry(c.Context(), eventID, entryID, c.Query("session_id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"restored": entryID}, nil)
}

// GetVehicleLogistics godoc
// @Summary Get the per-day vehicle logistics listing
// @Description Lists who boards which vehicle, where and when, on the chosen day.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param day query string true "Day of week (monday..sunday)"
// @Success 200 {object} utils.SuccessResponse{data=dto.VehicleLogisticsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/vehicle-logistics [get]
func (h *ScheduleHandler) GetVehicleLogistics(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidEventID)
	}

	resp, err := h.scheduleUC.VehicleLogistics(c.Context(), eventID, domain.Weekday(c.Query("day")))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.Boardings)})
}
