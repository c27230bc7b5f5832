package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview facade routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/interview", func(r chi.Router) {
		r.Get("/", h.GetStatus)
		r.Post("/start", h.StartInterview)
		r.Post("/answer", h.SubmitAnswer)
		r.Post("/hint", h.RequestHint)
		r.Post("/reset", h.ResetInterview)
		r.Get("/transcript", h.GetTranscript)
	})
}
