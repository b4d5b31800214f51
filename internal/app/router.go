package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/attendance"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/homework"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/schools"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/students"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/subjects"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/academy/teachers"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/auth"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	PermissionsHandler *authz.Handler
	StudentsHandler    *students.Handler
	TeachersHandler    *teachers.Handler
	SchoolsHandler     *schools.Handler
	SubjectsHandler    *subjects.Handler
	HomeworkHandler    *homework.Handler
	AttendanceHandler  *attendance.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/permissions", params.PermissionsHandler.MountRoutes)
	r.Route("/students", params.StudentsHandler.MountRoutes)
	r.Route("/teachers", params.TeachersHandler.MountRoutes)
	r.Route("/schools", params.SchoolsHandler.MountRoutes)
	r.Route("/subjects", params.SubjectsHandler.MountRoutes)
	r.Route("/homework", params.HomeworkHandler.MountRoutes)
	r.Route("/attendance", params.AttendanceHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
