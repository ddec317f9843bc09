package fleet

// Kind names an entity schema for validation.
type Kind string

// Entity kinds with a request body schema.
const (
	KindPilot       Kind = "pilot"
	KindShip        Kind = "ship"
	KindShipClass   Kind = "ship_class"
	KindWeaponClass Kind = "weapon_class"
	KindShipWeapon  Kind = "ship_weapon"
)

// Pilot is a person who flies ships.
type Pilot struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	FlightYears    int64  `json:"flight_years"`
	Rank           string `json:"rank"`
	MissionSuccess int64  `json:"mission_success"`
}

// ShipClass is a category of ship.
type ShipClass struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// WeaponClass is a category of weapon with its combat statistics.
type WeaponClass struct {
	ID          int64  `json:"id"`
	Class       string `json:"class"`
	Damage      int64  `json:"damage"`
	ReloadSpeed int64  `json:"reload_speed"`
	Spread      int64  `json:"spread"`
	Range       int64  `json:"range"`
}

// Ship is a vessel of a ship class flown by a pilot.
//
// ShipClassName and PilotName are resolved on read and are nil when the
// referenced row is missing.
type Ship struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Capacity      int64   `json:"capacity"`
	Speed         int64   `json:"speed"`
	Shield        int64   `json:"shield"`
	ShipClassID   int64   `json:"ship_class_id"`
	ShipClassName *string `json:"ship_class_name"`
	PilotID       int64   `json:"pilot_id"`
	PilotName     *string `json:"pilot_name"`
}

// ShipWeapon is a named weapon of a weapon class mounted on a ship.
// It is identified by ShipWeaponKey; the *Name fields are resolved on read.
type ShipWeapon struct {
	ShipID          int64   `json:"ship_id"`
	ShipName        *string `json:"ship_name"`
	ShipClassID     int64   `json:"ship_class_id"`
	ShipClassName   *string `json:"ship_class_name"`
	WeaponClassID   int64   `json:"weapon_class_id"`
	WeaponClassName *string `json:"weapon_class_name"`
	Name            string  `json:"name"`
}

// Key returns the identity of the mounted weapon.
func (w *ShipWeapon) Key() ShipWeaponKey {
	return ShipWeaponKey{ShipID: w.ShipID, ShipClassID: w.ShipClassID, WeaponClassID: w.WeaponClassID}
}

// ShipWeaponKey is the composite identity of a ShipWeapon.
type ShipWeaponKey struct {
	ShipID        int64
	ShipClassID   int64
	WeaponClassID int64
}

// PilotCriteria filters pilots. Nil fields impose no filter.
type PilotCriteria struct {
	Name              *string // case-insensitive substring
	Rank              *string // exact
	MinFlightYears    *int64
	MinMissionSuccess *int64
}

// ShipCriteria filters ships. Nil fields impose no filter.
type ShipCriteria struct {
	Name        *string
	ShipClassID *int64
	PilotID     *int64
	MinCapacity *int64
	MaxCapacity *int64
	MinSpeed    *int64
	MaxSpeed    *int64
	MinShield   *int64
	MaxShield   *int64
}

// ShipClassCriteria filters ship classes. Nil fields impose no filter.
type ShipClassCriteria struct {
	Name        *string
	Description *string
}
