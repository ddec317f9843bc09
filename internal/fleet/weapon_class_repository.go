package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/shiperd/internal/query"
)

// WeaponClassRepository defines persistence operations for weapon classes.
type WeaponClassRepository interface {
	List(ctx context.Context) ([]WeaponClass, error)
	GetByID(ctx context.Context, id int64) (*WeaponClass, error)
	Create(ctx context.Context, w *WeaponClass) (int64, error)
	Update(ctx context.Context, id int64, patch WeaponClassPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// SQLWeaponClassRepository implements WeaponClassRepository using database/sql.
type SQLWeaponClassRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewWeaponClassRepository creates a weapon class repository.
func NewWeaponClassRepository(db *sql.DB, ph query.Placeholder) *SQLWeaponClassRepository {
	return &SQLWeaponClassRepository{db: db, ph: ph}
}

func selectWeaponClasses() *query.Select {
	return query.NewSelect("weapon_class", "id", "class", "damage", "reload_speed", "spread", `"range"`)
}

func (r *SQLWeaponClassRepository) List(ctx context.Context) ([]WeaponClass, error) {
	classes, err := queryAll(ctx, r.db, r.ph, selectWeaponClasses().OrderBy("id"), scanWeaponClass)
	if err != nil {
		return nil, fmt.Errorf("listing weapon classes: %w", err)
	}
	return classes, nil
}

func (r *SQLWeaponClassRepository) GetByID(ctx context.Context, id int64) (*WeaponClass, error) {
	w, err := queryOne(ctx, r.db, r.ph, selectWeaponClasses().Equal("id", id), scanWeaponClass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeaponClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting weapon class %d: %w", id, err)
	}
	return w, nil
}

func (r *SQLWeaponClassRepository) Create(ctx context.Context, w *WeaponClass) (int64, error) {
	const stmt = `INSERT INTO weapon_class (class, damage, reload_speed, spread, "range") VALUES (?, ?, ?, ?, ?) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt),
		w.Class, w.Damage, w.ReloadSpeed, w.Spread, w.Range,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating weapon class: %w", writeError(err))
	}
	w.ID = id
	return id, nil
}

func (r *SQLWeaponClassRepository) Update(ctx context.Context, id int64, patch WeaponClassPatch) (int64, error) {
	u := query.NewUpdate("weapon_class")
	setOn(u, "class", patch.Class)
	setOn(u, "damage", patch.Damage)
	setOn(u, "reload_speed", patch.ReloadSpeed)
	setOn(u, "spread", patch.Spread)
	setOn(u, `"range"`, patch.Range)
	u.Where("id", id)

	n, err := execUpdate(ctx, r.db, r.ph, u)
	if err != nil {
		return 0, fmt.Errorf("updating weapon class %d: %w", id, err)
	}
	return n, nil
}

func (r *SQLWeaponClassRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := execDelete(ctx, r.db, r.ph, query.NewDelete("weapon_class").Where("id", id))
	if err != nil {
		return 0, fmt.Errorf("deleting weapon class %d: %w", id, err)
	}
	return n, nil
}

func scanWeaponClass(s scanner) (*WeaponClass, error) {
	var w WeaponClass
	if err := s.Scan(&w.ID, &w.Class, &w.Damage, &w.ReloadSpeed, &w.Spread, &w.Range); err != nil {
		return nil, err
	}
	return &w, nil
}
