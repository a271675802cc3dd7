package handlers

import "time"

// Response is the body returned by every echo endpoint.
type Response struct {
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user,omitempty"`
}

// HealthResponse is the body returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
}
