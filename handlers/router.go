package handlers

import (
	"net/http"

	"reminders-server/logging"
	"reminders-server/middleware"
	"reminders-server/respond"
	"reminders-server/services"
)

type RouterConfig struct {
	Auth        *services.AuthService
	Reminders   *services.ReminderService
	Hub         *Hub
	Log         logging.Logger
	Development bool
}

// NewRouter wires every route behind the CORS, panic recovery and request
// logging middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	rs := respond.New(cfg.Log, cfg.Development)
	withAuth := middleware.NewAuth(cfg.Auth, rs).Require

	authHandler := NewAuthHandler(cfg.Auth, cfg.Hub, rs)
	reminderHandler := NewReminderHandler(cfg.Reminders, rs)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/ws", cfg.Hub.HandleWebSocket)
	mux.HandleFunc("GET /health", Health)

	// Protected routes
	mux.HandleFunc("POST /api/auth/logout", withAuth(authHandler.Logout))

	mux.HandleFunc("GET /api/reminders", withAuth(reminderHandler.List))
	mux.HandleFunc("POST /api/reminders", withAuth(reminderHandler.Create))
	mux.HandleFunc("GET /api/reminders/{id}", withAuth(reminderHandler.Get))
	mux.HandleFunc("PATCH /api/reminders/{id}", withAuth(reminderHandler.Update))
	mux.HandleFunc("DELETE /api/reminders/{id}", withAuth(reminderHandler.Delete))

	mux.HandleFunc("/", NotFound)

	var handler http.Handler = mux
	handler = middleware.Recover(cfg.Log, rs)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(cfg.Log)(handler)
	return handler
}
