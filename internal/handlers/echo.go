package handlers

import (
	"net/http"
	"time"

	"github.com/alfagnish/demo-service/internal/identity"
	"github.com/go-chi/chi/v5"
)

const (
	MessageRoot       = "Hello from Python service! This is a public endpoint."
	MessageAPIData    = "API data endpoint - requires user or admin role"
	MessageAdminUsers = "Admin endpoint - requires admin role"
)

// EchoHandler serves the static endpoints that report the service name, a
// fixed message, the current time and the caller's identity label.
//
// The role requirements named in the messages are enforced, if at all, by a
// policy layer in front of the service. These handlers never reject a caller.
type EchoHandler struct {
	service string
	now     Clock
}

// NewEchoHandler creates a new EchoHandler. A nil clock uses time.Now.
func NewEchoHandler(service string, now Clock) *EchoHandler {
	if now == nil {
		now = time.Now
	}
	return &EchoHandler{service: service, now: now}
}

// Routes registers the echo routes on the given chi router.
func (h *EchoHandler) Routes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/api/data", h.APIData)
	r.Post("/api/data", h.APIData)
	r.Get("/admin/users", h.AdminUsers)
}

// Root is the public landing endpoint.
func (h *EchoHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, MessageRoot)
}

// APIData serves both GET and POST; a POST body is ignored.
func (h *EchoHandler) APIData(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, MessageAPIData)
}

// AdminUsers is the admin-only endpoint as far as the message goes.
func (h *EchoHandler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, MessageAdminUsers)
}

func (h *EchoHandler) respond(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusOK, Response{
		Service:   h.service,
		Message:   message,
		Timestamp: h.now().UTC(),
		User:      identity.FromRequest(r).String(),
	})
}
