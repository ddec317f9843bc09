package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/shiperd/internal/query"
)

// PilotRepository defines persistence operations for pilots.
type PilotRepository interface {
	List(ctx context.Context) ([]Pilot, error)
	Search(ctx context.Context, c PilotCriteria) ([]Pilot, error)
	GetByID(ctx context.Context, id int64) (*Pilot, error)
	Create(ctx context.Context, p *Pilot) (int64, error)
	Update(ctx context.Context, id int64, patch PilotPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// SQLPilotRepository implements PilotRepository using database/sql.
type SQLPilotRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewPilotRepository creates a pilot repository.
func NewPilotRepository(db *sql.DB, ph query.Placeholder) *SQLPilotRepository {
	return &SQLPilotRepository{db: db, ph: ph}
}

func selectPilots() *query.Select {
	return query.NewSelect("pilot", "id", "name", "flight_years", `"rank"`, "mission_success")
}

// List returns all pilots ordered by ID.
func (r *SQLPilotRepository) List(ctx context.Context) ([]Pilot, error) {
	return r.Search(ctx, PilotCriteria{})
}

// Search returns pilots matching every supplied criterion, ordered by ID.
func (r *SQLPilotRepository) Search(ctx context.Context, c PilotCriteria) ([]Pilot, error) {
	sel := selectPilots().
		Contains("name", c.Name).
		Equal(`"rank"`, c.Rank).
		AtLeast("flight_years", c.MinFlightYears).
		AtLeast("mission_success", c.MinMissionSuccess).
		OrderBy("id")

	pilots, err := queryAll(ctx, r.db, r.ph, sel, scanPilot)
	if err != nil {
		return nil, fmt.Errorf("listing pilots: %w", err)
	}
	return pilots, nil
}

// GetByID returns a pilot, or ErrPilotNotFound.
func (r *SQLPilotRepository) GetByID(ctx context.Context, id int64) (*Pilot, error) {
	p, err := queryOne(ctx, r.db, r.ph, selectPilots().Equal("id", id), scanPilot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPilotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting pilot %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a pilot and returns its generated ID.
func (r *SQLPilotRepository) Create(ctx context.Context, p *Pilot) (int64, error) {
	const stmt = `INSERT INTO pilot (name, flight_years, "rank", mission_success) VALUES (?, ?, ?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt),
		p.Name, p.FlightYears, p.Rank, p.MissionSuccess,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating pilot: %w", writeError(err))
	}
	p.ID = id
	return id, nil
}

// Update writes the fields present in patch and returns the affected count.
func (r *SQLPilotRepository) Update(ctx context.Context, id int64, patch PilotPatch) (int64, error) {
	u := query.NewUpdate("pilot")
	setOn(u, "name", patch.Name)
	setOn(u, "flight_years", patch.FlightYears)
	setOn(u, `"rank"`, patch.Rank)
	setOn(u, "mission_success", patch.MissionSuccess)
	u.Where("id", id)

	n, err := execUpdate(ctx, r.db, r.ph, u)
	if err != nil {
		return 0, fmt.Errorf("updating pilot %d: %w", id, err)
	}
	return n, nil
}

// Delete removes a pilot. A pilot still assigned to a ship yields ErrInUse.
func (r *SQLPilotRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := execDelete(ctx, r.db, r.ph, query.NewDelete("pilot").Where("id", id))
	if err != nil {
		return 0, fmt.Errorf("deleting pilot %d: %w", id, err)
	}
	return n, nil
}

func scanPilot(s scanner) (*Pilot, error) {
	var p Pilot
	if err := s.Scan(&p.ID, &p.Name, &p.FlightYears, &p.Rank, &p.MissionSuccess); err != nil {
		return nil, err
	}
	return &p, nil
}
