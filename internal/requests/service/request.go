package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"garageportal/internal/slots/validator"
	"garageportal/pkg/client"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

// Calendar colors per booking status, matching the review calendar legend.
var statusColors = map[string]string{
	model.StatusPending:   "#1890ff",
	model.StatusConfirmed: "#52c41a",
	model.StatusRejected:  "#f5222d",
	model.StatusCancelled: "#fa8c16",
}

// RequestsAPI is the slice of the booking backend the review screens use.
type RequestsAPI interface {
	List(ctx context.Context, token string, q client.BookingQuery) (*model.Page[model.BookingRequest], error)
	ListMine(ctx context.Context, token string, q client.BookingQuery) (*model.Page[model.BookingRequest], error)
	ExportAll(ctx context.Context, token string) ([]model.BookingRequest, error)
	UpdateStatus(ctx context.Context, token string, requestID int, status string) error
}

type RequestService interface {
	Page(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error)
	Decide(ctx context.Context, sess *session.Session, requestID int, approve bool) (*model.Page[model.BookingRequest], error)
	ExportCalendar(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error)
}

// reviewState remembers each reviewer's current page query and the statuses
// of the requests on it, so decisions can be gated without a second fetch.
type reviewState struct {
	mu       sync.RWMutex
	query    client.BookingQuery
	statuses map[int]string
}

type requestService struct {
	requests RequestsAPI
	events   *events.Publisher
	log      *logger.Logger

	mu     sync.RWMutex
	states map[string]*reviewState
}

func NewRequestService(requests RequestsAPI, publisher *events.Publisher, log *logger.Logger) RequestService {
	return &requestService{
		requests: requests,
		events:   publisher,
		log:      log,
		states:   make(map[string]*reviewState),
	}
}

func (s *requestService) state(userID string) *reviewState {
	s.mu.RLock()
	st, ok := s.states[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.states[userID]; !ok {
		st = &reviewState{statuses: make(map[int]string)}
		s.states[userID] = st
	}
	return st
}

// Page fetches one page of requests. Owners see only their own; managers and
// admins see everything.
func (s *requestService) Page(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error) {
	page, err := s.fetchPage(ctx, sess, q)
	if err != nil {
		s.log.Error("Failed to fetch booking requests", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	st.query = q
	st.statuses = make(map[int]string, len(page.Items))
	for _, req := range page.Items {
		st.statuses[req.BookingRequestID] = req.Status
	}
	st.mu.Unlock()

	return page, nil
}

func (s *requestService) fetchPage(ctx context.Context, sess *session.Session, q client.BookingQuery) (*model.Page[model.BookingRequest], error) {
	if sess.Role == model.RoleVehicleOwner {
		return s.requests.ListMine(ctx, sess.Token, q)
	}
	return s.requests.List(ctx, sess.Token, q)
}

// Decide confirms or rejects a pending request, then refetches the current
// page so the caller renders server truth.
func (s *requestService) Decide(ctx context.Context, sess *session.Session, requestID int, approve bool) (*model.Page[model.BookingRequest], error) {
	if sess.Role != model.RoleServiceManager {
		return nil, apperrors.Forbidden("Only service managers can review booking requests")
	}

	st := s.state(sess.UserID)
	st.mu.RLock()
	current, known := st.statuses[requestID]
	query := st.query
	st.mu.RUnlock()

	if known && current != model.StatusPending {
		return nil, apperrors.Conflict("Only pending requests can be reviewed")
	}

	status := model.StatusRejected
	if approve {
		status = model.StatusConfirmed
	}

	if err := s.requests.UpdateStatus(ctx, sess.Token, requestID, status); err != nil {
		s.log.Error("Failed to update booking request status",
			"user_id", sess.UserID,
			"booking_request_id", requestID,
			"status", status,
			"error", err,
		)
		return nil, err
	}

	s.log.Info("Booking request reviewed",
		"user_id", sess.UserID,
		"booking_request_id", requestID,
		"status", status,
	)
	s.events.Publish(ctx, events.TypeRequestDecided, sess.UserID, map[string]any{
		"bookingRequestId": requestID,
		"status":           status,
	})

	return s.Page(ctx, sess, query)
}

// ExportCalendar renders every booking request as a colored calendar event
// on its booking date, spanning the booked slot's window.
func (s *requestService) ExportCalendar(ctx context.Context, sess *session.Session) ([]model.CalendarEvent, error) {
	if sess.Role != model.RoleGarageAdmin {
		return nil, apperrors.Forbidden("Only garage admins can export the booking calendar")
	}

	requests, err := s.requests.ExportAll(ctx, sess.Token)
	if err != nil {
		s.log.Error("Failed to export booking requests", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	calendar := make([]model.CalendarEvent, 0, len(requests))
	for _, req := range requests {
		start, err := combine(req.BookingDate, req.ServiceSlot.StartTime)
		if err != nil {
			s.log.Warn("Skipping request with unparseable schedule",
				"booking_request_id", req.BookingRequestID,
				"error", err,
			)
			continue
		}
		end, err := combine(req.BookingDate, req.ServiceSlot.EndTime)
		if err != nil {
			s.log.Warn("Skipping request with unparseable schedule",
				"booking_request_id", req.BookingRequestID,
				"error", err,
			)
			continue
		}

		calendar = append(calendar, model.CalendarEvent{
			ID:    req.BookingRequestID,
			Title: fmt.Sprintf("Vehicle: %d | Status: %s", req.VehicleID, req.Status),
			Start: start,
			End:   end,
			Color: statusColors[req.Status],
		})
	}

	sort.Slice(calendar, func(i, j int) bool {
		return calendar[i].Start.Before(calendar[j].Start)
	})

	return calendar, nil
}

func combine(date, clock string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+validator.NormalizeClock(clock))
}
