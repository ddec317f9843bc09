package api

import (
	"net/http"

	"github.com/nerrad567/shiperd/internal/fleet"
)

func (s *Server) shipClassResource() *resource[fleet.ShipClass, fleet.ShipClassPatch] {
	return &resource[fleet.ShipClass, fleet.ShipClassPatch]{
		s:        s,
		title:    "Ship class",
		plural:   "Ship classes",
		key:      "ship_class",
		listKey:  "ship_classes",
		notFound: fleet.ErrShipClassNotFound,
		get:      s.shipClasses.GetByID,
		create:   s.shipClasses.Create,
		update:   s.shipClasses.Update,
		delete:   s.shipClasses.Delete,
		decode:   fleet.DecodeShipClass,
		build:    fleet.ShipClassPatch.ShipClass,
	}
}

func (s *Server) handleListShipClasses(rs *resource[fleet.ShipClass, fleet.ShipClassPatch]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		classes, err := s.shipClasses.Search(r.Context(), fleet.ShipClassCriteria{
			Name:        q.str("name"),
			Description: q.str("description"),
		})
		rs.writeList(w, r, classes, err)
	}
}
