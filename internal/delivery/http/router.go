package http

import (
	"net/http"

	"health-marketplace-backend/internal/delivery/http/handler"
	"health-marketplace-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	professionalHandler *handler.ProfessionalHandler
	bookingHandler      *handler.BookingHandler
	catalogHandler      *handler.CatalogHandler
	offeringHandler     *handler.OfferingHandler
	searchHandler       *handler.SearchHandler
	patientHandler      *handler.PatientHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	professionalHandler *handler.ProfessionalHandler,
	bookingHandler *handler.BookingHandler,
	catalogHandler *handler.CatalogHandler,
	offeringHandler *handler.OfferingHandler,
	searchHandler *handler.SearchHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		professionalHandler: professionalHandler,
		bookingHandler:      bookingHandler,
		catalogHandler:      catalogHandler,
		offeringHandler:     offeringHandler,
		searchHandler:       searchHandler,
		patientHandler:      patientHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/professional", r.authHandler.RegisterProfessional).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public marketplace (no auth)
	api.HandleFunc("/categories", r.catalogHandler.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/activities", r.catalogHandler.ListActivities).Methods(http.MethodGet)
	api.HandleFunc("/professionals", r.searchHandler.SearchProfessionals).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{id}", r.searchHandler.GetProfessional).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Approval workflow (admin)
	admin.HandleFunc("/professionals/pending", r.professionalHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{id}/approve", r.professionalHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/professionals/{id}/reject", r.professionalHandler.Reject).Methods(http.MethodPost)

	// Catalog management (admin)
	admin.HandleFunc("/categories", r.catalogHandler.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", r.catalogHandler.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", r.catalogHandler.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/activities", r.catalogHandler.CreateActivity).Methods(http.MethodPost)
	admin.HandleFunc("/activities/{id}", r.catalogHandler.UpdateActivity).Methods(http.MethodPut)
	admin.HandleFunc("/activities/{id}", r.catalogHandler.DeleteActivity).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListRecent).Methods(http.MethodGet)

	// Professional profile updates (admin or owning professional)
	professionals := api.PathPrefix("/professionals").Subrouter()
	professionals.Use(r.authMiddleware.Authenticate)
	professionals.Use(middleware.RequireAdminOrProfessional)
	professionals.HandleFunc("/{id}", r.professionalHandler.Update).Methods(http.MethodPut)

	// Offerings (professional only)
	offerings := api.PathPrefix("/offerings").Subrouter()
	offerings.Use(r.authMiddleware.Authenticate)
	offerings.Use(middleware.RequireProfessional)
	offerings.HandleFunc("", r.offeringHandler.List).Methods(http.MethodGet)
	offerings.HandleFunc("", r.offeringHandler.Create).Methods(http.MethodPost)
	offerings.HandleFunc("/{id}", r.offeringHandler.Update).Methods(http.MethodPut)
	offerings.HandleFunc("/{id}", r.offeringHandler.Delete).Methods(http.MethodDelete)

	// Patient profile (patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patients.HandleFunc("/me", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	// Bookings (any authenticated role; fine-grained rules live in the usecase)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.HandleFunc("", r.bookingHandler.Create).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.List).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.Get).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
