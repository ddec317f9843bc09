package fleet

// PilotPatch carries the pilot fields of a request.
type PilotPatch struct {
	Name           Field[string]
	FlightYears    Field[int64]
	Rank           Field[string]
	MissionSuccess Field[int64]
}

// DecodePilot validates p and converts it into a PilotPatch.
func DecodePilot(p Payload, isUpdate bool) (PilotPatch, error) {
	if err := Validate(KindPilot, p, isUpdate); err != nil {
		return PilotPatch{}, err
	}
	return PilotPatch{
		Name:           p.stringField("name"),
		FlightYears:    p.intField("flight_years"),
		Rank:           p.stringField("rank"),
		MissionSuccess: p.intField("mission_success"),
	}, nil
}

// Pilot returns a new pilot holding the patch values.
func (pp PilotPatch) Pilot() *Pilot {
	var v Pilot
	pp.Name.assign(&v.Name)
	pp.FlightYears.assign(&v.FlightYears)
	pp.Rank.assign(&v.Rank)
	pp.MissionSuccess.assign(&v.MissionSuccess)
	return &v
}

// ShipPatch carries the ship fields of a request.
type ShipPatch struct {
	Name        Field[string]
	Capacity    Field[int64]
	Speed       Field[int64]
	Shield      Field[int64]
	ShipClassID Field[int64]
	PilotID     Field[int64]
}

// DecodeShip validates p and converts it into a ShipPatch.
func DecodeShip(p Payload, isUpdate bool) (ShipPatch, error) {
	if err := Validate(KindShip, p, isUpdate); err != nil {
		return ShipPatch{}, err
	}
	return ShipPatch{
		Name:        p.stringField("name"),
		Capacity:    p.intField("capacity"),
		Speed:       p.intField("speed"),
		Shield:      p.intField("shield"),
		ShipClassID: p.intField("ship_class_id"),
		PilotID:     p.intField("pilot_id"),
	}, nil
}

// Ship returns a new ship holding the patch values.
func (sp ShipPatch) Ship() *Ship {
	var v Ship
	sp.Name.assign(&v.Name)
	sp.Capacity.assign(&v.Capacity)
	sp.Speed.assign(&v.Speed)
	sp.Shield.assign(&v.Shield)
	sp.ShipClassID.assign(&v.ShipClassID)
	sp.PilotID.assign(&v.PilotID)
	return &v
}

// ShipClassPatch carries the ship class fields of a request.
// Description may be Null.
type ShipClassPatch struct {
	Name        Field[string]
	Description Field[string]
}

// DecodeShipClass validates p and converts it into a ShipClassPatch.
func DecodeShipClass(p Payload, isUpdate bool) (ShipClassPatch, error) {
	if err := Validate(KindShipClass, p, isUpdate); err != nil {
		return ShipClassPatch{}, err
	}
	return ShipClassPatch{
		Name:        p.stringField("name"),
		Description: p.stringField("description"),
	}, nil
}

// ShipClass returns a new ship class holding the patch values.
func (cp ShipClassPatch) ShipClass() *ShipClass {
	var v ShipClass
	cp.Name.assign(&v.Name)
	v.Description = cp.Description.Ptr()
	return &v
}

// WeaponClassPatch carries the weapon class fields of a request.
type WeaponClassPatch struct {
	Class       Field[string]
	Damage      Field[int64]
	ReloadSpeed Field[int64]
	Spread      Field[int64]
	Range       Field[int64]
}

// DecodeWeaponClass validates p and converts it into a WeaponClassPatch.
func DecodeWeaponClass(p Payload, isUpdate bool) (WeaponClassPatch, error) {
	if err := Validate(KindWeaponClass, p, isUpdate); err != nil {
		return WeaponClassPatch{}, err
	}
	return WeaponClassPatch{
		Class:       p.stringField("class"),
		Damage:      p.intField("damage"),
		ReloadSpeed: p.intField("reload_speed"),
		Spread:      p.intField("spread"),
		Range:       p.intField("range"),
	}, nil
}

// WeaponClass returns a new weapon class holding the patch values.
func (wp WeaponClassPatch) WeaponClass() *WeaponClass {
	var v WeaponClass
	wp.Class.assign(&v.Class)
	wp.Damage.assign(&v.Damage)
	wp.ReloadSpeed.assign(&v.ReloadSpeed)
	wp.Spread.assign(&v.Spread)
	wp.Range.assign(&v.Range)
	return &v
}

// DecodeShipWeapon validates a create payload and returns the weapon.
// Mounted weapons are never updated in place.
func DecodeShipWeapon(p Payload) (*ShipWeapon, error) {
	if err := Validate(KindShipWeapon, p, false); err != nil {
		return nil, err
	}
	var v ShipWeapon
	v.ShipID, _ = p.Int("ship_id")
	v.ShipClassID, _ = p.Int("ship_class_id")
	v.WeaponClassID, _ = p.Int("weapon_class_id")
	v.Name, _ = p.String("name")
	return &v, nil
}
