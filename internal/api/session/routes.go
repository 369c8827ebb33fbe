package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/practice-session", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/mode", h.SelectMode)
		r.Post("/{id}/navigate", h.Navigate)
		r.Put("/{id}/answer", h.SetAnswer)
		r.Post("/{id}/answer/dictation", h.AppendDictation)
		r.Post("/{id}/questions/more", h.MoreQuestions)
		r.Post("/{id}/evaluate", h.Evaluate)
		r.Post("/{id}/results/toggle", h.ToggleResults)
		r.Get("/{id}/evaluations", h.GetEvaluations)
		r.Get("/{id}/evaluations/export", h.ExportResults)
	})

	r.Route("/speech", func(r chi.Router) {
		r.Get("/availability", h.SpeechAvailability)
		r.Post("/speak", h.Speak)
	})
}
