package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/conversions"
	"github.com/sidereusnuntius/goreads/internal/service"
)

// PostStatus creates a status of the kind named in the path. The kind is the
// one part of the request that gets a hard rejection; everything else the
// pipeline tolerates or reports softly.
func PostStatus(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := GetSession(ctx)
		if !ok {
			http.Error(w, "Unauthenticated", http.StatusForbidden)
			return
		}

		if err := r.ParseForm(); err != nil {
			redirectBack(w, r)
			return
		}

		form := service.StatusForm{
			Content:        r.Form.Get("content"),
			ContentWarning: r.Form.Get("content_warning"),
			Sensitive:      r.Form.Get("sensitive") == "true",
			Book:           r.Form.Get("book"),
			Quote:          r.Form.Get("quote"),
		}
		if rating := r.Form.Get("rating"); rating != "" {
			form.Rating, _ = strconv.Atoi(rating)
		}
		if parent := r.Form.Get("reply_parent"); parent != "" {
			form.ReplyParentID, _ = strconv.ParseInt(parent, 10, 64)
		}

		variantTag := chi.URLParam(r, "type")
		_, err := handler.service.CreateStatus(ctx, s.UserID, variantTag, form)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrInvalidInput):
			// A form that fails soft validation is dropped quietly; the
			// author just lands back where they posted from.
			log.Debug().Err(err).Str("type", variantTag).Msg("status form rejected")
		default:
			code := GetCode(err)
			if code == http.StatusInternalServerError {
				log.Error().Err(err).Str("type", variantTag).Msg("status creation failed")
				http.Error(w, "", code)
				return
			}
			http.Error(w, err.Error(), code)
			return
		}

		redirectBack(w, r)
	}
}

func DeleteStatus(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := GetSession(ctx)
		if !ok {
			http.Error(w, "Unauthenticated", http.StatusForbidden)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "bad status id", http.StatusBadRequest)
			return
		}

		if err := handler.service.DeleteStatus(ctx, s.UserID, id); err != nil {
			http.Error(w, err.Error(), GetCode(err))
			return
		}
		redirectBack(w, r)
	}
}

// GetStatus serves the ActivityPub representation of a status. A deleted
// status answers with its tombstone and 410.
func GetStatus(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "bad status id", http.StatusBadRequest)
			return
		}

		status, err := handler.service.GetStatus(r.Context(), id)
		if err != nil {
			http.Error(w, "", GetCode(err))
			return
		}

		if status.Tombstoned {
			writeActivityJSON(w, http.StatusGone, conversions.StatusTombstone(status))
			return
		}
		writeActivityJSON(w, http.StatusOK, conversions.StatusToObject(status, true))
	}
}
