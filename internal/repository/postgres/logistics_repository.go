package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type logisticsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLogisticsRepository(db *DB) repository.LogisticsRepository {
	return &logisticsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *logisticsRepository) GetDays(ctx context.Context, eventID uuid.UUID) ([]domain.LogisticsDay, error) {
	query := `
		SELECT
			day, id, time, description, category,
			is_auto_generated, is_overridden,
			source_leg_id, source_stop_id, source_field,
			vehicle_name, person_id, masseur_id, sort_order
		FROM logistics_entries
		WHERE event_id = $1
		ORDER BY day, position
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		r.logger.Error("Failed to get logistics days", zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	buckets := make(map[domain.Weekday][]domain.TimingEntry)
	for rows.Next() {
		var day domain.Weekday
		var e domain.TimingEntry
		var sourceField *string
		err := rows.Scan(
			&day, &e.ID, &e.Time, &e.Description, &e.Category,
			&e.IsAutoGenerated, &e.IsOverridden,
			&e.SourceLegID, &e.SourceStopID, &sourceField,
			&e.VehicleName, &e.PersonID, &e.MasseurID, &e.SortOrder,
		)
		if err != nil {
			r.logger.Error("Failed to scan logistics entry", zap.Error(err))
			continue
		}
		if sourceField != nil {
			e.SourceField = domain.LegTimeField(*sourceField)
		}
		buckets[day] = append(buckets[day], e)
	}

	days := make([]domain.LogisticsDay, 0, len(buckets))
	for _, day := range domain.WeekdayOrder {
		if entries, ok := buckets[day]; ok {
			domain.SortEntries(entries)
			days = append(days, domain.LogisticsDay{Day: day, Entries: entries})
		}
	}
	return days, nil
}

func (r *logisticsRepository) SaveDays(ctx context.Context, eventID uuid.UUID, days []domain.LogisticsDay) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM logistics_entries WHERE event_id = $1`, eventID); err != nil {
		r.logger.Error("Failed to clear logistics entries", zap.Error(err))
		return errors.ErrDatabaseError
	}

	query := `
		INSERT INTO logistics_entries (
			event_id, day, position, id, time, description, category,
			is_auto_generated, is_overridden,
			source_leg_id, source_stop_id, source_field,
			vehicle_name, person_id, masseur_id, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	for _, day := range days {
		for position, e := range day.Entries {
			var sourceField *string
			if e.SourceField != "" {
				field := string(e.SourceField)
				sourceField = &field
			}
			_, err := tx.ExecContext(ctx, query,
				eventID, day.Day, position, e.ID, e.Time, e.Description, e.Category,
				e.IsAutoGenerated, e.IsOverridden,
				e.SourceLegID, e.SourceStopID, sourceField,
				e.VehicleName, e.PersonID, e.MasseurID, e.SortOrder,
			)
			if err != nil {
				r.logger.Error("Failed to insert logistics entry",
					zap.String("entry_id", e.ID),
					zap.Error(err))
				return errors.ErrDatabaseError
			}
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit logistics save", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *logisticsRepository) CountEntries(ctx context.Context) (map[domain.EntryCategory]int, error) {
	query := `
		SELECT category, COUNT(*)
		FROM logistics_entries
		GROUP BY category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count logistics entries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	counts := make(map[domain.EntryCategory]int)
	for rows.Next() {
		var category domain.EntryCategory
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			r.logger.Error("Failed to scan entry count", zap.Error(err))
			continue
		}
		counts[category] = count
	}
	return counts, nil
}
