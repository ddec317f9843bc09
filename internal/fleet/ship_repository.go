package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/shiperd/internal/query"
)

// ShipRepository defines persistence operations for ships.
type ShipRepository interface {
	List(ctx context.Context) ([]Ship, error)
	Search(ctx context.Context, c ShipCriteria) ([]Ship, error)
	GetByID(ctx context.Context, id int64) (*Ship, error)
	Create(ctx context.Context, s *Ship) (int64, error)
	Update(ctx context.Context, id int64, patch ShipPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// SQLShipRepository implements ShipRepository using database/sql.
type SQLShipRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewShipRepository creates a ship repository.
func NewShipRepository(db *sql.DB, ph query.Placeholder) *SQLShipRepository {
	return &SQLShipRepository{db: db, ph: ph}
}

// selectShips resolves class and pilot names; either is NULL when the
// referenced row is gone.
func selectShips() *query.Select {
	return query.NewSelect("ship s",
		"s.id", "s.name", "s.capacity", "s.speed", "s.shield",
		"s.ship_class_id", "sc.name", "s.pilot_id", "p.name").
		LeftJoin("ship_class sc ON s.ship_class_id = sc.id").
		LeftJoin("pilot p ON s.pilot_id = p.id")
}

// List returns all ships ordered by ID.
func (r *SQLShipRepository) List(ctx context.Context) ([]Ship, error) {
	return r.Search(ctx, ShipCriteria{})
}

// Search returns ships matching every supplied criterion, ordered by ID.
func (r *SQLShipRepository) Search(ctx context.Context, c ShipCriteria) ([]Ship, error) {
	sel := selectShips().
		Contains("s.name", c.Name).
		Equal("s.ship_class_id", c.ShipClassID).
		Equal("s.pilot_id", c.PilotID).
		AtLeast("s.capacity", c.MinCapacity).
		AtMost("s.capacity", c.MaxCapacity).
		AtLeast("s.speed", c.MinSpeed).
		AtMost("s.speed", c.MaxSpeed).
		AtLeast("s.shield", c.MinShield).
		AtMost("s.shield", c.MaxShield).
		OrderBy("s.id")

	ships, err := queryAll(ctx, r.db, r.ph, sel, scanShip)
	if err != nil {
		return nil, fmt.Errorf("listing ships: %w", err)
	}
	return ships, nil
}

// GetByID returns a ship, or ErrShipNotFound.
func (r *SQLShipRepository) GetByID(ctx context.Context, id int64) (*Ship, error) {
	s, err := queryOne(ctx, r.db, r.ph, selectShips().Equal("s.id", id), scanShip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting ship %d: %w", id, err)
	}
	return s, nil
}

// Create inserts a ship and returns its generated ID. A missing ship
// class or pilot yields ErrInvalidReference.
func (r *SQLShipRepository) Create(ctx context.Context, s *Ship) (int64, error) {
	const stmt = `INSERT INTO ship (name, capacity, speed, shield, ship_class_id, pilot_id) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt),
		s.Name, s.Capacity, s.Speed, s.Shield, s.ShipClassID, s.PilotID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating ship: %w", writeError(err))
	}
	s.ID = id
	return id, nil
}

// Update writes the fields present in patch and returns the affected count.
func (r *SQLShipRepository) Update(ctx context.Context, id int64, patch ShipPatch) (int64, error) {
	u := query.NewUpdate("ship")
	setOn(u, "name", patch.Name)
	setOn(u, "capacity", patch.Capacity)
	setOn(u, "speed", patch.Speed)
	setOn(u, "shield", patch.Shield)
	setOn(u, "ship_class_id", patch.ShipClassID)
	setOn(u, "pilot_id", patch.PilotID)
	u.Where("id", id)

	n, err := execUpdate(ctx, r.db, r.ph, u)
	if err != nil {
		return 0, fmt.Errorf("updating ship %d: %w", id, err)
	}
	return n, nil
}

// Delete removes the ship's mounted weapons and then the ship, in one
// transaction. It returns the number of ship rows removed.
func (r *SQLShipRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := execDelete(ctx, tx, r.ph, query.NewDelete("ship_weapons").Where("ship_id", id)); err != nil {
		return 0, fmt.Errorf("deleting weapons of ship %d: %w", id, err)
	}

	n, err := execDelete(ctx, tx, r.ph, query.NewDelete("ship").Where("id", id))
	if err != nil {
		return 0, fmt.Errorf("deleting ship %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing ship delete: %w", err)
	}
	return n, nil
}

func scanShip(s scanner) (*Ship, error) {
	var (
		ship      Ship
		className sql.NullString
		pilotName sql.NullString
	)
	err := s.Scan(&ship.ID, &ship.Name, &ship.Capacity, &ship.Speed, &ship.Shield,
		&ship.ShipClassID, &className, &ship.PilotID, &pilotName)
	if err != nil {
		return nil, err
	}
	ship.ShipClassName = stringPtr(className)
	ship.PilotName = stringPtr(pilotName)
	return &ship, nil
}
