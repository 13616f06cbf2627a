package web

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Mount(r chi.Router) {
	authenticated := AuthenticatedMiddleware(h)
	r.Use(SessionMiddleware(h))

	r.Route("/", func(r chi.Router) {
		r.Post(LoginRoute, Login(h))
		r.Post(SignUpRoute, SignUp(h))
		r.Get("/logout", Logout(h))
	})

	r.Get("/@{name}", Profile(h))
	r.Get("/@{name}@{host}", Profile(h))
	r.Get("/u/{name}", Actor(h))

	r.With(authenticated).Post("/post/{type}", PostStatus(h))

	r.Route("/s/{id}", func(r chi.Router) {
		r.Get("/", GetStatus(h))
		r.With(authenticated).Post("/delete", DeleteStatus(h))
	})
}
