package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/conversions"
)

// Actor serves a local user's ActivityPub actor document.
func Actor(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		user, err := handler.service.GetLocalUser(r.Context(), name)
		if err != nil {
			http.Error(w, "", GetCode(err))
			return
		}
		writeActivityJSON(w, http.StatusOK, conversions.UserToActor(user))
	}
}

func Profile(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		host := chi.URLParam(r, "host")
		p, err := handler.service.GetUserProfile(r.Context(), name, host)
		if err != nil {
			http.Error(w, "", GetCode(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(p); err != nil {
			log.Error().Err(err).Msg("error displaying profile")
		}
	}
}
