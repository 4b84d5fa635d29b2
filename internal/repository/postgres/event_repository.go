package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type eventRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewEventRepository(db *DB) repository.EventRepository {
	return &eventRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *eventRepository) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT id, name, location, start_date, end_date
		FROM events
		WHERE id = $1
	`

	var e domain.Event
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&e.ID, &e.Name, &e.Location, &e.StartDate, &e.EndDate,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrEventNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get event", zap.String("id", eventID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &e, nil
}

func (r *eventRepository) GetRaceDayInfo(ctx context.Context, eventID uuid.UUID) (*domain.RaceDayInfo, error) {
	query := `
		SELECT
			event_id,
			accreditation_date, accreditation_time,
			directors_meeting_date, directors_meeting_time,
			fictitious_start_date, fictitious_start_time,
			real_start_date, real_start_time,
			presentation_date, presentation_time,
			finish_date, finish_time
		FROM race_day_info
		WHERE event_id = $1
	`

	var info domain.RaceDayInfo
	refs := make([]sql.NullString, 12)
	dest := []interface{}{&info.EventID}
	for i := range refs {
		dest = append(dest, &refs[i])
	}

	err := r.db.QueryRowContext(ctx, query, eventID).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get race day info", zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	info.Accreditation = dateTimeRef(refs[0], refs[1])
	info.DirectorsMeeting = dateTimeRef(refs[2], refs[3])
	info.FictitiousStart = dateTimeRef(refs[4], refs[5])
	info.RealStart = dateTimeRef(refs[6], refs[7])
	info.Presentation = dateTimeRef(refs[8], refs[9])
	info.Finish = dateTimeRef(refs[10], refs[11])
	return &info, nil
}

func (r *eventRepository) UpsertRaceDayInfo(ctx context.Context, info *domain.RaceDayInfo) error {
	query := `
		INSERT INTO race_day_info (
			event_id,
			accreditation_date, accreditation_time,
			directors_meeting_date, directors_meeting_time,
			fictitious_start_date, fictitious_start_time,
			real_start_date, real_start_time,
			presentation_date, presentation_time,
			finish_date, finish_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (event_id) DO UPDATE SET
			accreditation_date = EXCLUDED.accreditation_date,
			accreditation_time = EXCLUDED.accreditation_time,
			directors_meeting_date = EXCLUDED.directors_meeting_date,
			directors_meeting_time = EXCLUDED.directors_meeting_time,
			fictitious_start_date = EXCLUDED.fictitious_start_date,
			fictitious_start_time = EXCLUDED.fictitious_start_time,
			real_start_date = EXCLUDED.real_start_date,
			real_start_time = EXCLUDED.real_start_time,
			presentation_date = EXCLUDED.presentation_date,
			presentation_time = EXCLUDED.presentation_time,
			finish_date = EXCLUDED.finish_date,
			finish_time = EXCLUDED.finish_time
	`

	accDate, accTime := refColumns(info.Accreditation)
	dirDate, dirTime := refColumns(info.DirectorsMeeting)
	ficDate, ficTime := refColumns(info.FictitiousStart)
	realDate, realTime := refColumns(info.RealStart)
	presDate, presTime := refColumns(info.Presentation)
	finDate, finTime := refColumns(info.Finish)

	_, err := r.db.ExecContext(ctx, query,
		info.EventID,
		accDate, accTime,
		dirDate, dirTime,
		ficDate, ficTime,
		realDate, realTime,
		presDate, presTime,
		finDate, finTime,
	)
	if err != nil {
		r.logger.Error("Failed to upsert race day info", zap.String("event_id", info.EventID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *eventRepository) GetAccommodations(ctx context.Context, eventID uuid.UUID) ([]*domain.Accommodation, error) {
	query := `
		SELECT id, event_id, name, is_stopover, travel_time_to_start
		FROM accommodations
		WHERE event_id = $1
		ORDER BY is_stopover, name
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		r.logger.Error("Failed to get accommodations", zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var accommodations []*domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(&a.ID, &a.EventID, &a.Name, &a.IsStopover, &a.TravelTimeToStart); err != nil {
			r.logger.Error("Failed to scan accommodation", zap.Error(err))
			continue
		}
		accommodations = append(accommodations, &a)
	}

	return accommodations, nil
}

func (r *eventRepository) CountEvents(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count events", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

// dateTimeRef builds an optional ref from nullable columns; a row with
// neither date nor time yields nil.
func dateTimeRef(date, timeOfDay sql.NullString) *domain.DateTimeRef {
	if !date.Valid && !timeOfDay.Valid {
		return nil
	}
	return &domain.DateTimeRef{Date: date.String, Time: timeOfDay.String}
}

func refColumns(ref *domain.DateTimeRef) (interface{}, interface{}) {
	if ref == nil {
		return nil, nil
	}
	return ref.Date, ref.Time
}
