package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/utils"
	"github.com/roadbook-microservice/internal/usecase"
	"go.uber.org/zap"
)

// ExportHandler - handler for the roadbook PDF export
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
	logger   *zap.Logger
}

// NewExportHandler - constructor for ExportHandler
func NewExportHandler(exportUC *usecase.ExportUseCase, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exportUC: exportUC,
		logger:   logger,
	}
}

// ExportPDF godoc
// @Summary Export the schedule as a roadbook PDF
// @Description Renders the merged schedule into a printable roadbook. An optional day appends the vehicle logistics listing for that day.
// @Tags Export
// @Accept json
// @Produce application/pdf
// @Param event_id path string true "Event ID"
// @Param view query string false "View mode (team or individual)" default(team)
// @Param person_id query string false "Person ID, required for individual view"
// @Param day query string false "Day of week for the vehicle logistics appendix"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/events/{event_id}/schedule/export.pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
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

	document, err := h.exportUC.ExportPDF(c.Context(), eventID, view, domain.Weekday(c.Query("day")))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="roadbook-%s.pdf"`, eventID))
	return c.Send(document)
}
