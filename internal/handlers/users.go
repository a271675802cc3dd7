package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alfagnish/demo-service/internal/identity"
	"github.com/go-chi/chi/v5"
)

// UsersHandler serves per-user resource routes. The user in the path is taken
// at face value: it is neither checked against the Authorization header nor
// against any ownership policy, so any caller can claim to be any user.
type UsersHandler struct {
	service string
	now     Clock
}

// NewUsersHandler creates a new UsersHandler. A nil clock uses time.Now.
func NewUsersHandler(service string, now Clock) *UsersHandler {
	if now == nil {
		now = time.Now
	}
	return &UsersHandler{service: service, now: now}
}

// Routes registers user resource routes on the given chi router.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/{userID}/{resource}", h.Resource)
}

// Resource echoes the user and resource named in the path.
func (h *UsersHandler) Resource(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userID")
	resource := pathParam(r, "resource")
	if userID == "" || resource == "" {
		NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Service:   h.service,
		Message:   ResourceMessage(userID, resource),
		Timestamp: h.now().UTC(),
		User:      identity.Claimed(userID).String(),
	})
}

// ResourceMessage renders the message for a user's resource.
func ResourceMessage(userID, resource string) string {
	return fmt.Sprintf("Resource-based access: user %s's %s (OPA validates ownership)", userID, resource)
}

// pathParam returns the URL parameter in decoded form. chi routes on
// r.URL.RawPath when it is set, so only then is the value still escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
