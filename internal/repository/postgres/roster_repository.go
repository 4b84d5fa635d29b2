package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/domain/repository"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type rosterRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRosterRepository(db *DB) repository.RosterRepository {
	return &rosterRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *rosterRepository) GetDirectory(ctx context.Context) (*domain.NameDirectory, error) {
	dir := &domain.NameDirectory{
		Riders:   make(map[uuid.UUID]string),
		Staff:    make(map[uuid.UUID]string),
		Vehicles: make(map[string]string),
	}

	if err := r.loadPeople(ctx, `SELECT id, first_name, last_name FROM riders`, dir.Riders); err != nil {
		return nil, err
	}
	if err := r.loadPeople(ctx, `SELECT id, first_name, last_name FROM staff`, dir.Staff); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM vehicles`)
	if err != nil {
		r.logger.Error("Failed to load vehicles", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			r.logger.Error("Failed to scan vehicle", zap.Error(err))
			continue
		}
		dir.Vehicles[id] = name
	}

	return dir, nil
}

func (r *rosterRepository) loadPeople(ctx context.Context, query string, into map[uuid.UUID]string) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load people", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var firstName, lastName string
		if err := rows.Scan(&id, &firstName, &lastName); err != nil {
			r.logger.Error("Failed to scan person", zap.Error(err))
			continue
		}
		into[id] = strings.TrimSpace(firstName + " " + lastName)
	}
	return nil
}
