package attendance

import (
	"github.com/go-chi/chi/v5"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// MountRoutes registers attendance routes behind their required tasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskAttendanceView))
		r.Get("/", h.list)
		r.Get("/summary", h.summary)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskAttendanceAdd))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskAttendanceEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskAttendanceDelete))
		r.Delete("/{id}", h.delete)
	})
}
