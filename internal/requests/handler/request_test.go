package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"garageportal/pkg/client"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockRequestService struct {
	pageFunc   func(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error)
	decideFunc func(ctx context.Context, sess *session.Session, requestID int, approve bool) (*model.Page[model.BookingRequest], error)
	exportFunc func(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error)
}

func (m *mockRequestService) Page(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error) {
	return m.pageFunc(ctx, sess, q)
}

func (m *mockRequestService) Decide(ctx context.Context, sess *session.Session, requestID int, approve bool) (*model.Page[model.BookingRequest], error) {
	return m.decideFunc(ctx, sess, requestID, approve)
}

func (m *mockRequestService) ExportCalendar(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error) {
	return m.exportFunc(ctx, sess)
}

func TestRequestHandler_ListUnknownRole(t *testing.T) {
	svc := &mockRequestService{
		pageFunc: func(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error) {
			t.Error("request service should not be called for an unknown role")
			return nil, nil
		},
	}

	h := NewRequestHandler(svc, logger.Discard())
	router := httprouter.New()
	h.RegisterRoutes(router)

	sess := &session.Session{UserID: "41", Role: "FLEET_AUDITOR", Token: "tok-41"}
	r := httptest.NewRequest(http.MethodGet, "/requests", nil)
	r = r.WithContext(session.NewContext(r.Context(), sess))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"data":{}}` {
		t.Errorf("expected empty view, got %s", body)
	}
}
