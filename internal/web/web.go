package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/alexedwards/scs"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/service"
)

const (
	LoginRoute  = "/login"
	SignUpRoute = "/signup"

	ContentTypeAP = "application/activity+json"
)

type Handler struct {
	Config         *config.Configuration
	service        service.Service
	SessionManager *scs.Manager
}

func New(config *config.Configuration, service service.Service, manager *scs.Manager) Handler {
	return Handler{
		Config:         config,
		service:        service,
		SessionManager: manager,
	}
}

// GetCode maps service errors onto status codes. Anything unrecognized is an
// internal error.
func GetCode(err error) int {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownVariant),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeActivityJSON(w http.ResponseWriter, status int, obj vocab.Type) {
	data, err := streams.Serialize(obj)
	if err != nil {
		log.Error().Err(err).Msg("serialization error")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeAP)
	w.WriteHeader(status)
	w.Write(body)
}

// redirectBack sends the browser to wherever it came from, like every form
// endpoint here does on success.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	prev := r.Header.Get("Referer")
	if prev == "" {
		prev = "/"
	}
	http.Redirect(w, r, prev, http.StatusSeeOther)
}
