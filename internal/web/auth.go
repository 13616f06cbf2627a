package web

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

const SessionKey = "user"

type Session struct {
	UserID    int64
	AccountID int64
	Username  string
}

type key struct{}

func GetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(key{}).(Session)
	return s, ok
}

func AuthenticatedMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := GetSession(r.Context())
			if ok {
				handler.ServeHTTP(w, r)
				return
			}
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Unauthenticated"))
		})
	}
}

func SessionMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			zero := Session{}
			session := handler.SessionManager.Load(r)
			var s Session
			err := session.GetObject(SessionKey, &s)
			if s != zero && err == nil {
				ctx := r.Context()
				ctx = context.WithValue(ctx, key{}, s)
				r = r.WithContext(ctx)
			}

			h.ServeHTTP(w, r)
		})
	}
}

func Login(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := handler.SessionManager.Load(r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}

		user := r.Form.Get("user")
		password := r.Form.Get("password")
		u, authenticated, err := handler.service.AuthenticateUser(ctx, user, password)
		if err != nil {
			http.Error(w, err.Error(), GetCode(err))
			return
		}
		if !authenticated {
			http.Error(w, "wrong username or password", http.StatusUnauthorized)
			return
		}

		err = session.PutObject(w, SessionKey, Session{
			u.UserID,
			u.AccountID,
			u.Username,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to create session")
			http.Error(w, "", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func Logout(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prev := r.URL.Query().Get("prev")
		s := handler.SessionManager.Load(r)
		if err := s.Destroy(w); err != nil {
			log.Error().Err(err).Msg("failed to destroy session")
		}

		if prev == "" {
			prev = "/"
		}
		http.Redirect(w, r, prev, http.StatusSeeOther)
	}
}

func SignUp(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}

		username := r.Form.Get("username")
		email := r.Form.Get("email")
		password := r.Form.Get("password")

		if err := handler.service.CreateUser(ctx, username, password, email); err != nil {
			http.Error(w, err.Error(), GetCode(err))
			return
		}
		http.Redirect(w, r, LoginRoute, http.StatusSeeOther)
	}
}
