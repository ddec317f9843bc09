package fleet

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type valueType int

const (
	typeString valueType = iota
	typeCount            // integer >= 0
	typeRef              // integer >= 1, a foreign key
)

// rule describes one field of a request body.
type rule struct {
	name     string
	typ      valueType
	required bool
	nullable bool
	// allowBlank skips the non-empty check for strings.
	allowBlank bool
	maxLen     int
}

// Field length limits.
const (
	maxNameLength        = 100
	maxRankLength        = 50
	maxClassLength       = 50
	maxDescriptionLength = 500
)

var schemas = map[Kind][]rule{
	KindPilot: {
		{name: "name", typ: typeString, required: true, maxLen: maxNameLength},
		{name: "flight_years", typ: typeCount, required: true},
		{name: "rank", typ: typeString, required: true, maxLen: maxRankLength},
		{name: "mission_success", typ: typeCount, required: true},
	},
	KindShip: {
		{name: "name", typ: typeString, required: true, maxLen: maxNameLength},
		{name: "capacity", typ: typeCount, required: true},
		{name: "speed", typ: typeCount, required: true},
		{name: "shield", typ: typeCount, required: true},
		{name: "ship_class_id", typ: typeRef, required: true},
		{name: "pilot_id", typ: typeRef, required: true},
	},
	KindShipClass: {
		{name: "name", typ: typeString, required: true, maxLen: maxNameLength},
		{name: "description", typ: typeString, nullable: true, allowBlank: true, maxLen: maxDescriptionLength},
	},
	KindWeaponClass: {
		{name: "class", typ: typeString, required: true, maxLen: maxClassLength},
		{name: "damage", typ: typeCount, required: true},
		{name: "reload_speed", typ: typeCount, required: true},
		{name: "spread", typ: typeCount, required: true},
		{name: "range", typ: typeCount, required: true},
	},
	KindShipWeapon: {
		{name: "ship_id", typ: typeRef, required: true},
		{name: "ship_class_id", typ: typeRef, required: true},
		{name: "weapon_class_id", typ: typeRef, required: true},
		{name: "name", typ: typeString, required: true, maxLen: maxNameLength},
	},
}

// Validate checks p against the schema of kind.
//
// On create every required field must be present. On update presence is
// not enforced, but every field that is present is checked. Only the first
// failure is reported, as a *ValidationError wrapping ErrInvalidPayload.
// Keys outside the schema are ignored.
func Validate(kind Kind, p Payload, isUpdate bool) error {
	rules, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("fleet: no schema for kind %q", kind)
	}

	if !isUpdate {
		for _, r := range rules {
			if r.required && !p.Has(r.name) {
				return invalid(r.name, "Missing required field: %s", r.name)
			}
		}
	}

	for _, r := range rules {
		if !p.Has(r.name) {
			continue
		}
		if err := r.check(p); err != nil {
			return err
		}
	}
	return nil
}

func (r rule) check(p Payload) error {
	if r.nullable && p.IsNull(r.name) {
		return nil
	}

	switch r.typ {
	case typeString:
		s, ok := p.String(r.name)
		if !ok {
			return invalid(r.name, "Field '%s' must be a string", r.name)
		}
		if !r.allowBlank && strings.TrimSpace(s) == "" {
			return invalid(r.name, "Field '%s' cannot be empty", r.name)
		}
		if r.maxLen > 0 && utf8.RuneCountInString(s) > r.maxLen {
			return invalid(r.name, "Field '%s' cannot exceed %d characters", r.name, r.maxLen)
		}

	case typeCount, typeRef:
		n, ok := p.Int(r.name)
		if !ok {
			return invalid(r.name, "Field '%s' must be an integer", r.name)
		}
		if r.typ == typeCount && n < 0 {
			return invalid(r.name, "Field '%s' cannot be negative", r.name)
		}
		if r.typ == typeRef && n < 1 {
			return invalid(r.name, "Field '%s' must be a positive integer", r.name)
		}
	}
	return nil
}
