package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"devlink-platform/internal/usecase"
)

// Server wires the HTTP surface to the use cases.
type Server struct {
	userUC      usecase.UserUseCase
	profileUC   usecase.ProfileUseCase
	contentUC   usecase.ContentUseCase
	featureUC   usecase.FeatureUseCase
	paymentUC   usecase.PaymentUseCase
	accessUC    usecase.AccessUseCase
	analyticsUC usecase.AnalyticsUseCase
	auth        *AuthManager
	log         *zerolog.Logger
}

func NewServer(
	userUC usecase.UserUseCase,
	profileUC usecase.ProfileUseCase,
	contentUC usecase.ContentUseCase,
	featureUC usecase.FeatureUseCase,
	paymentUC usecase.PaymentUseCase,
	accessUC usecase.AccessUseCase,
	analyticsUC usecase.AnalyticsUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		userUC:      userUC,
		profileUC:   profileUC,
		contentUC:   contentUC,
		featureUC:   featureUC,
		paymentUC:   paymentUC,
		accessUC:    accessUC,
		analyticsUC: analyticsUC,
		auth:        auth,
		log:         logger,
	}
}

// Router assembles the full route tree wrapped in the base middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Anonymous surface.
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/features", s.handleListFeatures)

		r.Get("/profiles/{username}", s.handlePublicProfile)
		r.Post("/profiles/{username}/links/{linkID}/click", s.handleLinkClick)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(s.auth))

			r.Post("/payments/order", s.handleCreateOrder)
			r.Post("/payments/verify", s.handleVerifyPayment)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", s.handleMe)
				r.Get("/profile", s.handleGetOwnProfile)
				r.Put("/profile", s.handleUpdateProfile)

				r.Get("/links", s.handleListLinks)
				r.Post("/links", s.handleAddLink)
				r.Put("/links/{id}", s.handleUpdateLink)
				r.Delete("/links/{id}", s.handleDeleteLink)

				r.Get("/projects", s.handleListProjects)
				r.Post("/projects", s.handleAddProject)
				r.Put("/projects/{id}", s.handleUpdateProject)
				r.Delete("/projects/{id}", s.handleDeleteProject)

				r.Get("/experiences", s.handleListExperiences)
				r.Post("/experiences", s.handleAddExperience)
				r.Put("/experiences/{id}", s.handleUpdateExperience)
				r.Delete("/experiences/{id}", s.handleDeleteExperience)

				r.Get("/stats", s.handleStats)
				r.Get("/subscriptions", s.handleListSubscriptions)
				r.Get("/payments", s.handleListPayments)
				r.Get("/access/{feature}", s.handleHasAccess)
			})
		})
	})

	return Chain(r, TraceID(), RequestLog(s.log), Recover(s.log), Timeout(15*time.Second))
}
