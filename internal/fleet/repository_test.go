package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	_ "github.com/nerrad567/shiperd/migrations"
)

// fixture is a migrated in-memory database with one row of every entity.
type fixture struct {
	pilots       *SQLPilotRepository
	ships        *SQLShipRepository
	shipClasses  *SQLShipClassRepository
	weapons      *SQLWeaponClassRepository
	shipWeapons  *SQLShipWeaponRepository
	pilotID      int64
	shipClassID  int64
	weaponID     int64
	shipID       int64
	mountedOnKey ShipWeaponKey
}

func testDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testDB(t)
	ph := db.Placeholder()
	f := &fixture{
		pilots:      NewPilotRepository(db.DB, ph),
		ships:       NewShipRepository(db.DB, ph),
		shipClasses: NewShipClassRepository(db.DB, ph),
		weapons:     NewWeaponClassRepository(db.DB, ph),
		shipWeapons: NewShipWeaponRepository(db.DB, ph),
	}
	ctx := context.Background()

	var err error
	if f.pilotID, err = f.pilots.Create(ctx, &Pilot{Name: "Kara Thrace", FlightYears: 8, Rank: "Captain", MissionSuccess: 95}); err != nil {
		t.Fatalf("create pilot: %v", err)
	}
	if f.shipClassID, err = f.shipClasses.Create(ctx, &ShipClass{Name: "Viper"}); err != nil {
		t.Fatalf("create ship class: %v", err)
	}
	if f.weaponID, err = f.weapons.Create(ctx, &WeaponClass{Class: "Autocannon", Damage: 40, ReloadSpeed: 2, Spread: 3, Range: 500}); err != nil {
		t.Fatalf("create weapon class: %v", err)
	}
	if f.shipID, err = f.ships.Create(ctx, &Ship{Name: "Viper 7242", Capacity: 1, Speed: 90, Shield: 20, ShipClassID: f.shipClassID, PilotID: f.pilotID}); err != nil {
		t.Fatalf("create ship: %v", err)
	}
	f.mountedOnKey = ShipWeaponKey{ShipID: f.shipID, ShipClassID: f.shipClassID, WeaponClassID: f.weaponID}
	if err := f.shipWeapons.Create(ctx, &ShipWeapon{
		ShipID: f.shipID, ShipClassID: f.shipClassID, WeaponClassID: f.weaponID, Name: "Nose gun",
	}); err != nil {
		t.Fatalf("create ship weapon: %v", err)
	}
	return f
}

func TestShipRead_ResolvesNames(t *testing.T) {
	f := newFixture(t)

	ship, err := f.ships.GetByID(context.Background(), f.shipID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if ship.ShipClassName == nil || *ship.ShipClassName != "Viper" {
		t.Errorf("ShipClassName = %v, want Viper", ship.ShipClassName)
	}
	if ship.PilotName == nil || *ship.PilotName != "Kara Thrace" {
		t.Errorf("PilotName = %v, want Kara Thrace", ship.PilotName)
	}
}

func TestShipWeaponRead_ResolvesNames(t *testing.T) {
	f := newFixture(t)

	w, err := f.shipWeapons.Get(context.Background(), f.mountedOnKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if w.ShipName == nil || *w.ShipName != "Viper 7242" {
		t.Errorf("ShipName = %v", w.ShipName)
	}
	if w.WeaponClassName == nil || *w.WeaponClassName != "Autocannon" {
		t.Errorf("WeaponClassName = %v", w.WeaponClassName)
	}

	list, err := f.shipWeapons.ListByShip(context.Background(), f.shipID+100)
	if err != nil {
		t.Fatalf("ListByShip() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListByShip(unknown) returned %d rows, want 0", len(list))
	}
}

func TestShipDelete_CascadesWeapons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.ships.Delete(ctx, f.shipID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Delete() = %d, want 1", n)
	}

	weapons, err := f.shipWeapons.ListByShip(ctx, f.shipID)
	if err != nil {
		t.Fatalf("ListByShip() error = %v", err)
	}
	if len(weapons) != 0 {
		t.Errorf("ship weapons left after delete: %d", len(weapons))
	}
	if _, err := f.ships.GetByID(ctx, f.shipID); !errors.Is(err, ErrShipNotFound) {
		t.Errorf("GetByID() error = %v, want ErrShipNotFound", err)
	}
}

func TestPartialUpdate_LeavesOtherFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.pilots.Update(ctx, f.pilotID, PilotPatch{Rank: Present("Major")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Update() = %d, want 1", n)
	}

	p, err := f.pilots.GetByID(ctx, f.pilotID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.Rank != "Major" || p.Name != "Kara Thrace" || p.FlightYears != 8 || p.MissionSuccess != 95 {
		t.Errorf("pilot after partial update = %+v", p)
	}
}

func TestShipClassDescription_SetAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.shipClasses.Update(ctx, f.shipClassID, ShipClassPatch{Description: Present("Space superiority fighter")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	c, _ := f.shipClasses.GetByID(ctx, f.shipClassID)
	if c.Description == nil || *c.Description != "Space superiority fighter" {
		t.Errorf("Description = %v", c.Description)
	}

	if _, err := f.shipClasses.Update(ctx, f.shipClassID, ShipClassPatch{Description: Null[string]()}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	c, _ = f.shipClasses.GetByID(ctx, f.shipClassID)
	if c.Description != nil {
		t.Errorf("Description = %q, want nil", *c.Description)
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.pilots.Create(ctx, &Pilot{Name: "Lee Adama", FlightYears: 6, Rank: "Captain", MissionSuccess: 90}); err != nil {
		t.Fatalf("create pilot: %v", err)
	}

	name := "THRACE"
	got, err := f.pilots.Search(ctx, PilotCriteria{Name: &name})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Kara Thrace" {
		t.Errorf("Search(name=THRACE) = %+v", got)
	}

	minYears := int64(7)
	rank := "Captain"
	got, err = f.pilots.Search(ctx, PilotCriteria{Rank: &rank, MinFlightYears: &minYears})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != f.pilotID {
		t.Errorf("Search(rank, min_flight_years) = %+v", got)
	}

	all, err := f.pilots.Search(ctx, PilotCriteria{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	listed, err := f.pilots.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 || len(listed) != 2 || all[0].ID > all[1].ID {
		t.Errorf("Search({}) = %+v, List() = %+v", all, listed)
	}
}

func TestSearch_NonASCIIContains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.pilots.Create(ctx, &Pilot{Name: "Élan Voss", FlightYears: 2, Rank: "Ensign", MissionSuccess: 10}); err != nil {
		t.Fatalf("create pilot: %v", err)
	}
	if _, err := f.shipClasses.Create(ctx, &ShipClass{Name: "Über"}); err != nil {
		t.Fatalf("create ship class: %v", err)
	}

	for _, name := range []string{"Élan", "élan", "ÉLAN", "voss"} {
		got, err := f.pilots.Search(ctx, PilotCriteria{Name: &name})
		if err != nil {
			t.Fatalf("Search(%q) error = %v", name, err)
		}
		if len(got) != 1 || got[0].Name != "Élan Voss" {
			t.Errorf("Search(name=%q) = %+v, want Élan Voss", name, got)
		}
	}

	for _, name := range []string{"Über", "über", "ÜBER"} {
		got, err := f.shipClasses.Search(ctx, ShipClassCriteria{Name: &name})
		if err != nil {
			t.Fatalf("Search(%q) error = %v", name, err)
		}
		if len(got) != 1 || got[0].Name != "Über" {
			t.Errorf("Search(name=%q) = %+v, want Über", name, got)
		}
	}
}

func TestConstraintErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("duplicate ship weapon", func(t *testing.T) {
		err := f.shipWeapons.Create(ctx, &ShipWeapon{
			ShipID: f.shipID, ShipClassID: f.shipClassID, WeaponClassID: f.weaponID, Name: "Second gun",
		})
		if !errors.Is(err, ErrShipWeaponExists) {
			t.Errorf("Create() error = %v, want ErrShipWeaponExists", err)
		}
	})

	t.Run("dangling reference on create", func(t *testing.T) {
		_, err := f.ships.Create(ctx, &Ship{Name: "Ghost", ShipClassID: 999, PilotID: f.pilotID})
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Create() error = %v, want ErrInvalidReference", err)
		}
	})

	t.Run("dangling reference on update", func(t *testing.T) {
		_, err := f.ships.Update(ctx, f.shipID, ShipPatch{PilotID: Present(int64(999))})
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Update() error = %v, want ErrInvalidReference", err)
		}
	})

	t.Run("delete referenced pilot", func(t *testing.T) {
		_, err := f.pilots.Delete(ctx, f.pilotID)
		if !errors.Is(err, ErrInUse) {
			t.Errorf("Delete() error = %v, want ErrInUse", err)
		}
	})

	t.Run("delete referenced weapon class", func(t *testing.T) {
		_, err := f.weapons.Delete(ctx, f.weaponID)
		if !errors.Is(err, ErrInUse) {
			t.Errorf("Delete() error = %v, want ErrInUse", err)
		}
	})
}

func TestShipWeaponDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.shipWeapons.Delete(ctx, f.mountedOnKey)
	if err != nil || n != 1 {
		t.Fatalf("Delete() = (%d, %v), want (1, nil)", n, err)
	}
	n, err = f.shipWeapons.Delete(ctx, f.mountedOnKey)
	if err != nil || n != 0 {
		t.Errorf("second Delete() = (%d, %v), want (0, nil)", n, err)
	}
	if _, err := f.shipWeapons.Get(ctx, f.mountedOnKey); !errors.Is(err, ErrShipWeaponNotFound) {
		t.Errorf("Get() error = %v, want ErrShipWeaponNotFound", err)
	}
}
