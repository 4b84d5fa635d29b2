package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/pkg/pdf"
	"github.com/roadbook-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ExportUseCase renders the roadbook PDF. It consumes exactly the same
// merged/grouped schedule as the on-screen view, plus an optional
// per-weekday vehicle logistics appendix.
type ExportUseCase struct {
	scheduleUC *ScheduleUseCase
	logger     *zap.Logger
}

func NewExportUseCase(scheduleUC *ScheduleUseCase, logger *zap.Logger) *ExportUseCase {
	return &ExportUseCase{
		scheduleUC: scheduleUC,
		logger:     logger,
	}
}

// ExportPDF builds the roadbook document for an event and view. When a day
// is given, the vehicle logistics listing for that day is appended.
func (uc *ExportUseCase) ExportPDF(
	ctx context.Context,
	eventID uuid.UUID,
	view ScheduleView,
	logisticsDay domain.Weekday,
) ([]byte, error) {
	schedule, _, err := uc.scheduleUC.GetSchedule(ctx, eventID, view, "")
	if err != nil {
		return nil, err
	}

	sources, err := uc.scheduleUC.LoadSources(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var logistics *dto.VehicleLogisticsResponse
	if logisticsDay != "" {
		logistics, err = uc.scheduleUC.VehicleLogistics(ctx, eventID, logisticsDay)
		if err != nil {
			return nil, err
		}
	}

	document, err := pdf.RenderRoadbook(sources.Event, schedule.Days, logistics)
	if err != nil {
		uc.logger.Error("Failed to render roadbook PDF",
			zap.String("event_id", eventID.String()),
			zap.Error(err))
		return nil, errors.ErrExportError
	}

	return document, nil
}
