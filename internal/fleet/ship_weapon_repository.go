package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/query"
)

// ShipWeaponRepository defines persistence operations for mounted weapons.
// Rows are addressed by their ShipWeaponKey.
type ShipWeaponRepository interface {
	List(ctx context.Context) ([]ShipWeapon, error)
	ListByShip(ctx context.Context, shipID int64) ([]ShipWeapon, error)
	Get(ctx context.Context, key ShipWeaponKey) (*ShipWeapon, error)
	Create(ctx context.Context, w *ShipWeapon) error
	Delete(ctx context.Context, key ShipWeaponKey) (int64, error)
}

// SQLShipWeaponRepository implements ShipWeaponRepository using database/sql.
type SQLShipWeaponRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewShipWeaponRepository creates a ship weapon repository.
func NewShipWeaponRepository(db *sql.DB, ph query.Placeholder) *SQLShipWeaponRepository {
	return &SQLShipWeaponRepository{db: db, ph: ph}
}

func selectShipWeapons() *query.Select {
	return query.NewSelect("ship_weapons sw",
		"sw.ship_id", "s.name", "sw.ship_class_id", "sc.name", "sw.weapon_class_id", "wc.class", "sw.name").
		LeftJoin("ship s ON sw.ship_id = s.id").
		LeftJoin("ship_class sc ON sw.ship_class_id = sc.id").
		LeftJoin("weapon_class wc ON sw.weapon_class_id = wc.id")
}

var shipWeaponOrder = []string{"sw.ship_id", "sw.ship_class_id", "sw.weapon_class_id"}

// List returns all mounted weapons ordered by key.
func (r *SQLShipWeaponRepository) List(ctx context.Context) ([]ShipWeapon, error) {
	weapons, err := queryAll(ctx, r.db, r.ph, selectShipWeapons().OrderBy(shipWeaponOrder...), scanShipWeapon)
	if err != nil {
		return nil, fmt.Errorf("listing ship weapons: %w", err)
	}
	return weapons, nil
}

// ListByShip returns the weapons mounted on one ship. An unknown ship
// yields an empty list.
func (r *SQLShipWeaponRepository) ListByShip(ctx context.Context, shipID int64) ([]ShipWeapon, error) {
	sel := selectShipWeapons().
		Equal("sw.ship_id", shipID).
		OrderBy(shipWeaponOrder...)

	weapons, err := queryAll(ctx, r.db, r.ph, sel, scanShipWeapon)
	if err != nil {
		return nil, fmt.Errorf("listing weapons of ship %d: %w", shipID, err)
	}
	return weapons, nil
}

// Get returns the weapon mounted under key, or ErrShipWeaponNotFound.
func (r *SQLShipWeaponRepository) Get(ctx context.Context, key ShipWeaponKey) (*ShipWeapon, error) {
	sel := selectShipWeapons().
		Equal("sw.ship_id", key.ShipID).
		Equal("sw.ship_class_id", key.ShipClassID).
		Equal("sw.weapon_class_id", key.WeaponClassID)

	w, err := queryOne(ctx, r.db, r.ph, sel, scanShipWeapon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShipWeaponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting ship weapon: %w", err)
	}
	return w, nil
}

// Create mounts a weapon. A duplicate key yields ErrShipWeaponExists and a
// missing ship, ship class or weapon class yields ErrInvalidReference.
func (r *SQLShipWeaponRepository) Create(ctx context.Context, w *ShipWeapon) error {
	const stmt = `INSERT INTO ship_weapons (ship_id, ship_class_id, weapon_class_id, name) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.ph.Rebind(stmt), w.ShipID, w.ShipClassID, w.WeaponClassID, w.Name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("creating ship weapon: %w", ErrShipWeaponExists)
		}
		return fmt.Errorf("creating ship weapon: %w", writeError(err))
	}
	return nil
}

// Delete unmounts the weapon under key and returns the affected count.
func (r *SQLShipWeaponRepository) Delete(ctx context.Context, key ShipWeaponKey) (int64, error) {
	d := query.NewDelete("ship_weapons").
		Where("ship_id", key.ShipID).
		Where("ship_class_id", key.ShipClassID).
		Where("weapon_class_id", key.WeaponClassID)

	n, err := execDelete(ctx, r.db, r.ph, d)
	if err != nil {
		return 0, fmt.Errorf("deleting ship weapon: %w", err)
	}
	return n, nil
}

func scanShipWeapon(s scanner) (*ShipWeapon, error) {
	var (
		w                                ShipWeapon
		shipName, className, weaponClass sql.NullString
	)
	err := s.Scan(&w.ShipID, &shipName, &w.ShipClassID, &className, &w.WeaponClassID, &weaponClass, &w.Name)
	if err != nil {
		return nil, err
	}
	w.ShipName = stringPtr(shipName)
	w.ShipClassName = stringPtr(className)
	w.WeaponClassName = stringPtr(weaponClass)
	return &w, nil
}
