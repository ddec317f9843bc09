package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/shiperd/internal/query"
)

// ShipClassRepository defines persistence operations for ship classes.
type ShipClassRepository interface {
	List(ctx context.Context) ([]ShipClass, error)
	Search(ctx context.Context, c ShipClassCriteria) ([]ShipClass, error)
	GetByID(ctx context.Context, id int64) (*ShipClass, error)
	Create(ctx context.Context, c *ShipClass) (int64, error)
	Update(ctx context.Context, id int64, patch ShipClassPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// SQLShipClassRepository implements ShipClassRepository using database/sql.
type SQLShipClassRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewShipClassRepository creates a ship class repository.
func NewShipClassRepository(db *sql.DB, ph query.Placeholder) *SQLShipClassRepository {
	return &SQLShipClassRepository{db: db, ph: ph}
}

func selectShipClasses() *query.Select {
	return query.NewSelect("ship_class", "id", "name", "description")
}

// List returns all ship classes ordered by ID.
func (r *SQLShipClassRepository) List(ctx context.Context) ([]ShipClass, error) {
	return r.Search(ctx, ShipClassCriteria{})
}

// Search matches name and description as case-insensitive substrings.
func (r *SQLShipClassRepository) Search(ctx context.Context, c ShipClassCriteria) ([]ShipClass, error) {
	sel := selectShipClasses().
		Contains("name", c.Name).
		Contains("description", c.Description).
		OrderBy("id")

	classes, err := queryAll(ctx, r.db, r.ph, sel, scanShipClass)
	if err != nil {
		return nil, fmt.Errorf("listing ship classes: %w", err)
	}
	return classes, nil
}

// GetByID returns a ship class, or ErrShipClassNotFound.
func (r *SQLShipClassRepository) GetByID(ctx context.Context, id int64) (*ShipClass, error) {
	c, err := queryOne(ctx, r.db, r.ph, selectShipClasses().Equal("id", id), scanShipClass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShipClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting ship class %d: %w", id, err)
	}
	return c, nil
}

// Create inserts a ship class and returns its generated ID.
func (r *SQLShipClassRepository) Create(ctx context.Context, c *ShipClass) (int64, error) {
	const stmt = `INSERT INTO ship_class (name, description) VALUES (?, ?) RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt), c.Name, nullString(c.Description)).Scan(&id); err != nil {
		return 0, fmt.Errorf("creating ship class: %w", writeError(err))
	}
	c.ID = id
	return id, nil
}

// Update writes the fields present in patch. A null description clears it.
func (r *SQLShipClassRepository) Update(ctx context.Context, id int64, patch ShipClassPatch) (int64, error) {
	u := query.NewUpdate("ship_class")
	setOn(u, "name", patch.Name)
	setOn(u, "description", patch.Description)
	u.Where("id", id)

	n, err := execUpdate(ctx, r.db, r.ph, u)
	if err != nil {
		return 0, fmt.Errorf("updating ship class %d: %w", id, err)
	}
	return n, nil
}

// Delete removes a ship class. A class still used by ships or mounted
// weapons yields ErrInUse.
func (r *SQLShipClassRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := execDelete(ctx, r.db, r.ph, query.NewDelete("ship_class").Where("id", id))
	if err != nil {
		return 0, fmt.Errorf("deleting ship class %d: %w", id, err)
	}
	return n, nil
}

func scanShipClass(s scanner) (*ShipClass, error) {
	var (
		c    ShipClass
		desc sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Name, &desc); err != nil {
		return nil, err
	}
	c.Description = stringPtr(desc)
	return &c, nil
}
