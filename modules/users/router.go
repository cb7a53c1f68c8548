package users

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the user-management endpoints.
//
//	r.Mount("/users", users.Router(handler))
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/", h.bulkUpdate)
	r.Delete("/", h.bulkDelete)

	r.Get("/suggestions", h.suggest)
	r.Post("/invite", h.invite)
	r.Post("/remove", h.bulkRemove)

	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Post("/remove", h.remove)
		r.Post("/otp/reset", h.resetOTP)
		r.Post("/unblock", h.unblock)
		r.Put("/password", h.changePassword)
	})

	return r
}
