package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	"github.com/clinicdesk/clinic-backend/internal/identity"
)

type RouterConfig struct {
	Identity     *identity.Service
	Clinic       *clinic.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	MaxBodyBytes int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	if cfg.MaxBodyBytes > 0 {
		r.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))
	}

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Identity
	r.Post("/register", registerUserHandler(cfg.Identity))
	r.Post("/login", loginHandler(cfg.Identity))
	r.Get("/userProfile", getProfileHandler(cfg.Identity))
	r.Put("/userProfile", updateProfileHandler(cfg.Identity))

	// Doctor workflow
	r.Post("/registerDoc", registerDoctorHandler(cfg.Clinic))
	r.Put("/updateDoc", updateDoctorStatusHandler(cfg.Clinic))
	r.Delete("/deleteDoc", deleteDoctorHandler(cfg.Clinic))
	r.Get("/DoctorsData", allDoctorsHandler(cfg.Clinic))
	r.Get("/doctors-panel-info", approvedDoctorsHandler(cfg.Clinic))

	// Patient workflow
	r.Post("/registerPatient", registerPatientHandler(cfg.Clinic))
	r.Get("/getAllPatients", listPatientsHandler(cfg.Clinic))
	r.Delete("/deletePatient", deletePatientHandler(cfg.Clinic))

	// Booking
	r.Post("/book-appointment", bookAppointmentHandler(cfg.Clinic))
	r.Get("/doctor-appointments", doctorAppointmentsHandler(cfg.Clinic))

	return r
}
