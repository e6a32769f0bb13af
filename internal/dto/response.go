package dto

import "github.com/raj-prabhakar/webhook-repo/internal/domain"

// WebhookResponse is the envelope returned by the receiver endpoint.
// Data is present only when a record was stored.
type WebhookResponse struct {
	Status  string        `json:"status" example:"success"`
	Message string        `json:"message" example:"Push event stored successfully"`
	Data    *domain.Event `json:"data,omitempty"`
}

// FetchEventsResponse is the envelope returned by the listing endpoint.
// Data is omitted entirely when the store is empty.
type FetchEventsResponse struct {
	Status  string         `json:"status" example:"success"`
	Message string         `json:"message" example:"Fetched events successfully"`
	Data    []domain.Event `json:"data,omitempty"`
}

// ErrorResponse is returned on any processing failure.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"push payload missing after hash"`
}
