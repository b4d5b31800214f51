package teachers

import (
	"github.com/go-chi/chi/v5"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// MountRoutes registers teacher routes behind their required tasks. Level
// administration carries its own task separate from plain edits.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskTeacherView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskTeacherAdd))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskTeacherEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskTeacherLevelEdit))
		r.Put("/{id}/level", h.setLevel)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskTeacherDelete))
		r.Delete("/{id}", h.delete)
	})
}
