package http

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	registrationController *controllers.RegistrationController,
	notificationController *controllers.NotificationController,
	reminderController *controllers.ReminderController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	student := middleware.RequireRole(domain.RoleStudent)
	staff := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)
	admin := middleware.RequireRole(domain.RoleAdmin)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(student(registrationController.Register)))
	mux.HandleFunc("DELETE /events/{eventID}/registrations", auth(student(registrationController.Cancel)))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(staff(registrationController.ListForEvent)))
	mux.HandleFunc("GET /me/registrations", auth(registrationController.ListMine))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(notificationController.List))
	mux.HandleFunc("PUT /notifications/read-all", auth(notificationController.MarkAllRead))
	mux.HandleFunc("PUT /notifications/{notificationID}/read", auth(notificationController.MarkRead))

	// Admin
	mux.HandleFunc("POST /admin/reminders/run", auth(admin(reminderController.Run)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
