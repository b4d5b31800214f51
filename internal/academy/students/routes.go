package students

import (
	"github.com/go-chi/chi/v5"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// MountRoutes registers student routes behind their required tasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskStudentView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskStudentAdd))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskStudentEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskStudentDelete))
		r.Delete("/{id}", h.delete)
	})
}
