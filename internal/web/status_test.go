package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/service"
)

type stubService struct {
	service.Service
	createErr error
	created   int
}

func (s *stubService) CreateStatus(_ context.Context, _ int64, _ string, _ service.StatusForm) (domain.Status, error) {
	s.created++
	if s.createErr != nil {
		return domain.Status{}, s.createErr
	}
	return domain.Status{ID: 10}, nil
}

func postStatus(t *testing.T, svc service.Service, variant string, withSession bool) *httptest.ResponseRecorder {
	t.Helper()
	handler := New(&config.Configuration{Domain: "books.example"}, svc, nil)

	r := chi.NewRouter()
	r.Post("/post/{type}", PostStatus(&handler))

	form := url.Values{"content": {"hello"}}
	req := httptest.NewRequest(http.MethodPost, "/post/"+variant, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/u/ada")
	if withSession {
		ctx := context.WithValue(req.Context(), key{}, Session{UserID: 1, Username: "ada"})
		req = req.WithContext(ctx)
	}

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestPostStatus(t *testing.T) {
	svc := &stubService{}
	res := postStatus(t, svc, "note", true)

	if res.Code != http.StatusSeeOther {
		t.Errorf("expected a redirect, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/u/ada" {
		t.Errorf("expected a redirect back to the referer, got %q", loc)
	}
	if svc.created != 1 {
		t.Errorf("expected one create call, got %d", svc.created)
	}
}

func TestPostStatusInvalidFormRedirects(t *testing.T) {
	// A form that fails soft validation is dropped without an error page;
	// the author lands back where they posted from.
	svc := &stubService{createErr: fmt.Errorf("%w: empty content", service.ErrInvalidInput)}
	res := postStatus(t, svc, "note", true)

	if res.Code != http.StatusSeeOther {
		t.Errorf("expected a redirect, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/u/ada" {
		t.Errorf("expected a redirect back to the referer, got %q", loc)
	}
}

func TestPostStatusUnknownVariant(t *testing.T) {
	svc := &stubService{createErr: fmt.Errorf("%w: %q", service.ErrUnknownVariant, "poll")}
	res := postStatus(t, svc, "poll", true)

	if res.Code != http.StatusBadRequest {
		t.Errorf("an unknown kind is a hard rejection, got %d", res.Code)
	}
}

func TestPostStatusUnauthenticated(t *testing.T) {
	svc := &stubService{}
	res := postStatus(t, svc, "note", false)

	if res.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", res.Code)
	}
	if svc.created != 0 {
		t.Error("no status should be created without a session")
	}
}
