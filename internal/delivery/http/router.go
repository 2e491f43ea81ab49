package http

import (
	"net/http"

	"clinic-desk-backend/internal/delivery/http/handler"
	"clinic-desk-backend/internal/delivery/http/middleware"
	"clinic-desk-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	patientHandler        *handler.PatientHandler
	doctorHandler         *handler.DoctorHandler
	visitHandler          *handler.VisitHandler
	invoiceHandler        *handler.InvoiceHandler
	procedureOrderHandler *handler.ProcedureOrderHandler
	prescriptionHandler   *handler.PrescriptionHandler
	adminHandler          *handler.AdminHandler
	reportHandler         *handler.ReportHandler
	auditLogHandler       *handler.AuditLogHandler
	eventHandler          *handler.EventHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	visitHandler *handler.VisitHandler,
	invoiceHandler *handler.InvoiceHandler,
	procedureOrderHandler *handler.ProcedureOrderHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	adminHandler *handler.AdminHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	eventHandler *handler.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		patientHandler:        patientHandler,
		doctorHandler:         doctorHandler,
		visitHandler:          visitHandler,
		invoiceHandler:        invoiceHandler,
		procedureOrderHandler: procedureOrderHandler,
		prescriptionHandler:   prescriptionHandler,
		adminHandler:          adminHandler,
		reportHandler:         reportHandler,
		auditLogHandler:       auditLogHandler,
		eventHandler:          eventHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Front desk: patient registration and lookup
	desk := api.NewRoute().Subrouter()
	desk.Use(r.authMiddleware.Authenticate)
	desk.Use(middleware.RequireDesk)
	desk.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	desk.HandleFunc("/visits", r.visitHandler.Create).Methods(http.MethodPost)
	desk.HandleFunc("/invoices", r.invoiceHandler.Create).Methods(http.MethodPost)
	desk.HandleFunc("/invoices/{id}/items", r.invoiceHandler.AddItem).Methods(http.MethodPost)
	desk.HandleFunc("/invoices/{id}/issue", r.invoiceHandler.Issue).Methods(http.MethodPost)
	desk.HandleFunc("/invoices/{id}/void", r.invoiceHandler.Void).Methods(http.MethodPost)
	desk.HandleFunc("/invoices/{id}/payments", r.invoiceHandler.RecordPayment).Methods(http.MethodPost)
	desk.HandleFunc("/invoices/{id}/receipt", r.invoiceHandler.Receipt).Methods(http.MethodPost)

	// Staff-wide reads
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/patients/search", r.patientHandler.Search).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/history", r.patientHandler.History).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/today", r.patientHandler.TodayVisits).Methods(http.MethodGet)
	staff.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}/queue", r.doctorHandler.Queue).Methods(http.MethodGet)
	staff.HandleFunc("/visits/today", r.visitHandler.Today).Methods(http.MethodGet)
	staff.HandleFunc("/visits/{id}", r.visitHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/visits/{id}/procedure-orders", r.visitHandler.ProcedureOrders).Methods(http.MethodGet)
	staff.HandleFunc("/invoices/{id}", r.invoiceHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/procedure-orders/ongoing", r.procedureOrderHandler.ListOngoing).Methods(http.MethodGet)
	staff.HandleFunc("/procedure-orders/requested", r.procedureOrderHandler.ListRequested).Methods(http.MethodGet)
	staff.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/reports/daily-visits", r.reportHandler.DailyVisits).Methods(http.MethodGet)
	staff.HandleFunc("/reports/billing-summary", r.reportHandler.BillingSummary).Methods(http.MethodGet)
	staff.HandleFunc("/reports/queue-stats", r.reportHandler.QueueStats).Methods(http.MethodGet)
	staff.HandleFunc("/reports/total-patients", r.reportHandler.PatientStats).Methods(http.MethodGet)

	// Consulting room: doctors drive the queue and write prescriptions
	clinical := api.NewRoute().Subrouter()
	clinical.Use(r.authMiddleware.Authenticate)
	clinical.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleDoctor))
	clinical.HandleFunc("/visits/{id}/call", r.visitHandler.Call).Methods(http.MethodPost)
	clinical.HandleFunc("/visits/{id}/complete", r.visitHandler.Complete).Methods(http.MethodPost)
	clinical.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)
	clinical.HandleFunc("/procedure-orders", r.procedureOrderHandler.Create).Methods(http.MethodPost)

	// Treatment room: nurses run ordered procedures
	nursing := api.NewRoute().Subrouter()
	nursing.Use(r.authMiddleware.Authenticate)
	nursing.Use(middleware.RequireClinical)
	nursing.HandleFunc("/procedure-orders/{id}/start", r.procedureOrderHandler.Start).Methods(http.MethodPost)
	nursing.HandleFunc("/procedure-orders/{id}/complete", r.procedureOrderHandler.Complete).Methods(http.MethodPost)

	// Live event stream for displays and dashboards
	events := api.NewRoute().Subrouter()
	events.Use(r.authMiddleware.Authenticate)
	events.HandleFunc("/events/stream", r.eventHandler.Stream).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/settings", r.adminHandler.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", r.adminHandler.UpdateSettings).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.adminHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/rooms", r.adminHandler.CreateRoom).Methods(http.MethodPost)
	admin.HandleFunc("/rooms", r.adminHandler.ListRooms).Methods(http.MethodGet)
	admin.HandleFunc("/rooms/{id}", r.adminHandler.UpdateRoom).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{id}", r.adminHandler.DeleteRoom).Methods(http.MethodDelete)
	admin.HandleFunc("/procedures", r.adminHandler.CreateProcedure).Methods(http.MethodPost)
	admin.HandleFunc("/procedures", r.adminHandler.ListProcedures).Methods(http.MethodGet)
	admin.HandleFunc("/procedures/{id}", r.adminHandler.UpdateProcedure).Methods(http.MethodPut)
	admin.HandleFunc("/procedures/{id}", r.adminHandler.DeleteProcedure).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
