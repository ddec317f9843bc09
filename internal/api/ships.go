package api

import (
	"net/http"

	"github.com/nerrad567/shiperd/internal/fleet"
)

func (s *Server) shipResource() *resource[fleet.Ship, fleet.ShipPatch] {
	return &resource[fleet.Ship, fleet.ShipPatch]{
		s:        s,
		title:    "Ship",
		plural:   "Ships",
		key:      "ship",
		listKey:  "ships",
		notFound: fleet.ErrShipNotFound,
		get:      s.ships.GetByID,
		create:   s.ships.Create,
		update:   s.ships.Update,
		delete:   s.ships.Delete,
		decode:   fleet.DecodeShip,
		build:    fleet.ShipPatch.Ship,
	}
}

// handleListShips lists ships filtered by name, ship_class_id, pilot_id
// and min/max bounds on capacity, speed and shield.
func (s *Server) handleListShips(rs *resource[fleet.Ship, fleet.ShipPatch]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		criteria := fleet.ShipCriteria{
			Name:        q.str("name"),
			ShipClassID: q.integer("ship_class_id"),
			PilotID:     q.integer("pilot_id"),
			MinCapacity: q.integer("min_capacity"),
			MaxCapacity: q.integer("max_capacity"),
			MinSpeed:    q.integer("min_speed"),
			MaxSpeed:    q.integer("max_speed"),
			MinShield:   q.integer("min_shield"),
			MaxShield:   q.integer("max_shield"),
		}
		if q.invalid != "" {
			writeBadRequest(w, r, q.invalid)
			return
		}

		ships, err := s.ships.Search(r.Context(), criteria)
		rs.writeList(w, r, ships, err)
	}
}
