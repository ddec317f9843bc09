package api

import (
	"net/http"

	"github.com/nerrad567/shiperd/internal/fleet"
)

func (s *Server) weaponClassResource() *resource[fleet.WeaponClass, fleet.WeaponClassPatch] {
	return &resource[fleet.WeaponClass, fleet.WeaponClassPatch]{
		s:        s,
		title:    "Weapon class",
		plural:   "Weapon classes",
		key:      "weapon_class",
		listKey:  "weapon_classes",
		notFound: fleet.ErrWeaponClassNotFound,
		get:      s.weaponClasses.GetByID,
		create:   s.weaponClasses.Create,
		update:   s.weaponClasses.Update,
		delete:   s.weaponClasses.Delete,
		decode:   fleet.DecodeWeaponClass,
		build:    fleet.WeaponClassPatch.WeaponClass,
	}
}

func (s *Server) handleListWeaponClasses(rs *resource[fleet.WeaponClass, fleet.WeaponClassPatch]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classes, err := s.weaponClasses.List(r.Context())
		rs.writeList(w, r, classes, err)
	}
}
