package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type legRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLegRepository(db *DB) repository.LegRepository {
	return &legRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *legRepository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.TransportLeg, error) {
	query := `
		SELECT
			id, event_id, direction, mode,
			departure_date, departure_time, departure_location,
			arrival_date, arrival_time, arrival_location,
			vehicle, driver_id
		FROM transport_legs
		WHERE event_id = $1
		ORDER BY departure_date, departure_time, id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		r.logger.Error("Failed to get legs by event", zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var legs []*domain.TransportLeg
	legIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		leg, err := scanLeg(rows)
		if err != nil {
			r.logger.Error("Failed to scan leg", zap.Error(err))
			continue
		}
		legs = append(legs, leg)
		legIDs = append(legIDs, leg.ID)
	}

	if len(legs) == 0 {
		return legs, nil
	}

	byID := make(map[uuid.UUID]*domain.TransportLeg, len(legs))
	for _, leg := range legs {
		byID[leg.ID] = leg
	}

	if err := r.loadOccupants(ctx, legIDs, byID); err != nil {
		return nil, err
	}
	if err := r.loadStops(ctx, legIDs, byID); err != nil {
		return nil, err
	}

	return legs, nil
}

func (r *legRepository) GetByID(ctx context.Context, legID uuid.UUID) (*domain.TransportLeg, error) {
	query := `
		SELECT
			id, event_id, direction, mode,
			departure_date, departure_time, departure_location,
			arrival_date, arrival_time, arrival_location,
			vehicle, driver_id
		FROM transport_legs
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, legID)
	leg, err := scanLeg(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrLegNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get leg by ID", zap.String("id", legID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	byID := map[uuid.UUID]*domain.TransportLeg{leg.ID: leg}
	if err := r.loadOccupants(ctx, []uuid.UUID{leg.ID}, byID); err != nil {
		return nil, err
	}
	if err := r.loadStops(ctx, []uuid.UUID{leg.ID}, byID); err != nil {
		return nil, err
	}

	return leg, nil
}

func (r *legRepository) Create(ctx context.Context, leg *domain.TransportLeg) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transport_legs (
			id, event_id, direction, mode,
			departure_date, departure_time, departure_location,
			arrival_date, arrival_time, arrival_location,
			vehicle, driver_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, query,
		leg.ID, leg.EventID, leg.Direction, leg.Mode,
		leg.Departure.Date, leg.Departure.Time, leg.Departure.Location,
		leg.Arrival.Date, leg.Arrival.Time, leg.Arrival.Location,
		leg.Vehicle, leg.DriverID,
	)
	if err != nil {
		r.logger.Error("Failed to insert leg", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := r.insertOccupants(ctx, tx, leg); err != nil {
		return err
	}
	if err := r.insertStops(ctx, tx, leg); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit leg insert", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *legRepository) Update(ctx context.Context, leg *domain.TransportLeg) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		UPDATE transport_legs SET
			direction = $2, mode = $3,
			departure_date = $4, departure_time = $5, departure_location = $6,
			arrival_date = $7, arrival_time = $8, arrival_location = $9,
			vehicle = $10, driver_id = $11
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query,
		leg.ID, leg.Direction, leg.Mode,
		leg.Departure.Date, leg.Departure.Time, leg.Departure.Location,
		leg.Arrival.Date, leg.Arrival.Time, leg.Arrival.Location,
		leg.Vehicle, leg.DriverID,
	)
	if err != nil {
		r.logger.Error("Failed to update leg", zap.String("id", leg.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrLegNotFound
	}

	// Occupants and stops are rewritten wholesale
	if _, err := tx.ExecContext(ctx, `DELETE FROM leg_occupants WHERE leg_id = $1`, leg.ID); err != nil {
		r.logger.Error("Failed to clear occupants", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM leg_stops WHERE leg_id = $1`, leg.ID); err != nil {
		r.logger.Error("Failed to clear stops", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := r.insertOccupants(ctx, tx, leg); err != nil {
		return err
	}
	if err := r.insertStops(ctx, tx, leg); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit leg update", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *legRepository) Delete(ctx context.Context, legID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transport_legs WHERE id = $1`, legID)
	if err != nil {
		r.logger.Error("Failed to delete leg", zap.String("id", legID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrLegNotFound
	}
	return nil
}

func (r *legRepository) UpdateDepartureTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error {
	return r.updateLegTime(ctx, `UPDATE transport_legs SET departure_time = $2 WHERE id = $1`, legID, timeOfDay)
}

func (r *legRepository) UpdateArrivalTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error {
	return r.updateLegTime(ctx, `UPDATE transport_legs SET arrival_time = $2 WHERE id = $1`, legID, timeOfDay)
}

func (r *legRepository) UpdateStopTime(ctx context.Context, stopID uuid.UUID, timeOfDay string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE leg_stops SET time = $2 WHERE id = $1`, stopID, timeOfDay)
	if err != nil {
		r.logger.Error("Failed to update stop time", zap.String("stop_id", stopID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrStopNotFound
	}
	return nil
}

func (r *legRepository) CountLegs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transport_legs`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count legs", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func (r *legRepository) updateLegTime(ctx context.Context, query string, legID uuid.UUID, timeOfDay string) error {
	result, err := r.db.ExecContext(ctx, query, legID, timeOfDay)
	if err != nil {
		r.logger.Error("Failed to update leg time", zap.String("leg_id", legID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrLegNotFound
	}
	return nil
}

func (r *legRepository) loadOccupants(ctx context.Context, legIDs []uuid.UUID, byID map[uuid.UUID]*domain.TransportLeg) error {
	query := `
		SELECT leg_id, person_id, kind
		FROM leg_occupants
		WHERE leg_id = ANY($1)
		ORDER BY leg_id, person_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(legIDs))
	if err != nil {
		r.logger.Error("Failed to load occupants", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var legID uuid.UUID
		var o domain.Occupant
		if err := rows.Scan(&legID, &o.PersonID, &o.Kind); err != nil {
			r.logger.Error("Failed to scan occupant", zap.Error(err))
			continue
		}
		if leg, ok := byID[legID]; ok {
			leg.Occupants = append(leg.Occupants, o)
		}
	}
	return nil
}

func (r *legRepository) loadStops(ctx context.Context, legIDs []uuid.UUID, byID map[uuid.UUID]*domain.TransportLeg) error {
	query := `
		SELECT leg_id, id, date, time, location, kind, person_ids
		FROM leg_stops
		WHERE leg_id = ANY($1)
		ORDER BY leg_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(legIDs))
	if err != nil {
		r.logger.Error("Failed to load stops", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var legID uuid.UUID
		var s domain.IntermediateStop
		var personIDs pq.StringArray
		if err := rows.Scan(&legID, &s.ID, &s.Date, &s.Time, &s.Location, &s.Kind, &personIDs); err != nil {
			r.logger.Error("Failed to scan stop", zap.Error(err))
			continue
		}
		for _, raw := range personIDs {
			if id, err := uuid.Parse(raw); err == nil {
				s.PersonIDs = append(s.PersonIDs, id)
			}
		}
		if leg, ok := byID[legID]; ok {
			leg.Stops = append(leg.Stops, s)
		}
	}
	return nil
}

func (r *legRepository) insertOccupants(ctx context.Context, tx *sqlx.Tx, leg *domain.TransportLeg) error {
	query := `INSERT INTO leg_occupants (leg_id, person_id, kind) VALUES ($1, $2, $3)`
	for _, o := range leg.Occupants {
		if _, err := tx.ExecContext(ctx, query, leg.ID, o.PersonID, o.Kind); err != nil {
			r.logger.Error("Failed to insert occupant", zap.Error(err))
			return errors.ErrDatabaseError
		}
	}
	return nil
}

func (r *legRepository) insertStops(ctx context.Context, tx *sqlx.Tx, leg *domain.TransportLeg) error {
	query := `
		INSERT INTO leg_stops (id, leg_id, position, date, time, location, kind, person_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for i, s := range leg.Stops {
		ids := make(pq.StringArray, 0, len(s.PersonIDs))
		for _, id := range s.PersonIDs {
			ids = append(ids, id.String())
		}
		if _, err := tx.ExecContext(ctx, query, s.ID, leg.ID, i, s.Date, s.Time, s.Location, s.Kind, ids); err != nil {
			r.logger.Error("Failed to insert stop", zap.Error(err))
			return errors.ErrDatabaseError
		}
	}
	return nil
}

// scanLeg reads one leg row from either *sql.Row or *sql.Rows.
func scanLeg(row interface{ Scan(...interface{}) error }) (*domain.TransportLeg, error) {
	var leg domain.TransportLeg
	err := row.Scan(
		&leg.ID, &leg.EventID, &leg.Direction, &leg.Mode,
		&leg.Departure.Date, &leg.Departure.Time, &leg.Departure.Location,
		&leg.Arrival.Date, &leg.Arrival.Time, &leg.Arrival.Location,
		&leg.Vehicle, &leg.DriverID,
	)
	if err != nil {
		return nil, err
	}
	return &leg, nil
}
