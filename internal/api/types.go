package api

import "textdigest/internal/domain"

type SummarizeRequest struct {
	Text string `json:"text"`
	// Percentage falls back to the server default when omitted.
	Percentage *int `json:"percentage,omitempty"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type OutlineResponse struct {
	Outline []domain.OutlineEntry `json:"outline"`
}
