package api

import (
	"net/http"

	"github.com/nerrad567/shiperd/internal/fleet"
)

func (s *Server) pilotResource() *resource[fleet.Pilot, fleet.PilotPatch] {
	return &resource[fleet.Pilot, fleet.PilotPatch]{
		s:        s,
		title:    "Pilot",
		plural:   "Pilots",
		key:      "pilot",
		listKey:  "pilots",
		notFound: fleet.ErrPilotNotFound,
		get:      s.pilots.GetByID,
		create:   s.pilots.Create,
		update:   s.pilots.Update,
		delete:   s.pilots.Delete,
		decode:   fleet.DecodePilot,
		build:    fleet.PilotPatch.Pilot,
	}
}

// handleListPilots lists pilots, filtered by any of name (substring),
// rank (exact), min_flight_years and min_mission_success.
func (s *Server) handleListPilots(rs *resource[fleet.Pilot, fleet.PilotPatch]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		criteria := fleet.PilotCriteria{
			Name:              q.str("name"),
			Rank:              q.str("rank"),
			MinFlightYears:    q.integer("min_flight_years"),
			MinMissionSuccess: q.integer("min_mission_success"),
		}
		if q.invalid != "" {
			writeBadRequest(w, r, q.invalid)
			return
		}

		pilots, err := s.pilots.Search(r.Context(), criteria)
		rs.writeList(w, r, pilots, err)
	}
}
