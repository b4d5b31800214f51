package homework

import (
	"github.com/go-chi/chi/v5"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// MountRoutes registers homework routes behind their required tasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskHomeworkView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskHomeworkAdd))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskHomeworkEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(authz.TaskHomeworkDelete))
		r.Delete("/{id}", h.delete)
	})
}
