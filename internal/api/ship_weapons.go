package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/shiperd/internal/fleet"
)

// shipWeaponKeyPattern addresses a mounted weapon by its composite key.
const shipWeaponKeyPattern = "/{ship_id:[0-9]+}/{ship_class_id:[0-9]+}/{weapon_class_id:[0-9]+}"

const msgShipWeaponNotFound = "Ship weapon not found"

func (s *Server) mountShipWeapons(r chi.Router) {
	r.Get("/", s.handleListShipWeapons)
	r.Get("/ship/{ship_id:[0-9]+}", s.handleListShipWeaponsByShip)
	r.Get(shipWeaponKeyPattern, s.handleGetShipWeapon)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/", s.handleCreateShipWeapon)
		r.Delete(shipWeaponKeyPattern, s.handleDeleteShipWeapon)
	})
}

func (s *Server) writeShipWeapons(w http.ResponseWriter, r *http.Request, weapons []fleet.ShipWeapon, err error) {
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeResponse(w, r, http.StatusOK,
		success("Ship weapons retrieved successfully").
			with("count", len(weapons)).
			with("ship_weapons", weapons))
}

func (s *Server) handleListShipWeapons(w http.ResponseWriter, r *http.Request) {
	weapons, err := s.shipWeapons.List(r.Context())
	s.writeShipWeapons(w, r, weapons, err)
}

func (s *Server) handleListShipWeaponsByShip(w http.ResponseWriter, r *http.Request) {
	shipID, ok := urlID(w, r, "ship_id")
	if !ok {
		return
	}
	weapons, err := s.shipWeapons.ListByShip(r.Context(), shipID)
	s.writeShipWeapons(w, r, weapons, err)
}

func (s *Server) handleGetShipWeapon(w http.ResponseWriter, r *http.Request) {
	key, ok := shipWeaponKey(w, r)
	if !ok {
		return
	}
	weapon, ok := s.loadShipWeapon(w, r, key)
	if !ok {
		return
	}
	writeResponse(w, r, http.StatusOK, success("Ship weapon retrieved successfully").with("ship_weapon", weapon))
}

func (s *Server) handleCreateShipWeapon(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readPayload(w, r)
	if !ok {
		return
	}
	weapon, err := fleet.DecodeShipWeapon(payload)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	if err := s.shipWeapons.Create(r.Context(), weapon); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	key := weapon.Key()
	s.logMutation(r, "ship weapon created",
		"ship_id", key.ShipID,
		"ship_class_id", key.ShipClassID,
		"weapon_class_id", key.WeaponClassID,
	)

	created, ok := s.loadShipWeapon(w, r, key)
	if !ok {
		return
	}
	writeResponse(w, r, http.StatusCreated, success("Ship weapon created successfully").with("ship_weapon", created))
}

func (s *Server) handleDeleteShipWeapon(w http.ResponseWriter, r *http.Request) {
	key, ok := shipWeaponKey(w, r)
	if !ok {
		return
	}
	if _, ok := s.loadShipWeapon(w, r, key); !ok {
		return
	}

	n, err := s.shipWeapons.Delete(r.Context(), key)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if n == 0 {
		writeNotFound(w, r, msgShipWeaponNotFound)
		return
	}
	s.logMutation(r, "ship weapon deleted",
		"ship_id", key.ShipID,
		"ship_class_id", key.ShipClassID,
		"weapon_class_id", key.WeaponClassID,
	)

	writeResponse(w, r, http.StatusOK, success("Ship weapon deleted successfully"))
}

func (s *Server) loadShipWeapon(w http.ResponseWriter, r *http.Request, key fleet.ShipWeaponKey) (*fleet.ShipWeapon, bool) {
	weapon, err := s.shipWeapons.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, fleet.ErrShipWeaponNotFound) {
			writeNotFound(w, r, msgShipWeaponNotFound)
		} else {
			s.writeStoreError(w, r, err)
		}
		return nil, false
	}
	return weapon, true
}

// shipWeaponKey reads the composite key from the URL.
func shipWeaponKey(w http.ResponseWriter, r *http.Request) (fleet.ShipWeaponKey, bool) {
	var key fleet.ShipWeaponKey
	var ok bool
	if key.ShipID, ok = urlID(w, r, "ship_id"); !ok {
		return key, false
	}
	if key.ShipClassID, ok = urlID(w, r, "ship_class_id"); !ok {
		return key, false
	}
	if key.WeaponClassID, ok = urlID(w, r, "weapon_class_id"); !ok {
		return key, false
	}
	return key, true
}
