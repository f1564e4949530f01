package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Event types published on the booking lifecycle stream.
const (
	EventCreated   = "booking_created"
	EventCancelled = "booking_cancelled"
	EventExpired   = "booking_expired"
)

// createNumberAttempts bounds the regenerate-on-collision loop for booking numbers.
const createNumberAttempts = 3

type CreateRequest struct {
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Title     string
}

type UpdateRequest struct {
	StartTime time.Time
	EndTime   time.Time
	Title     string
}

// RoomChecker answers whether a room exists. Implemented by room.Service.
type RoomChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventPublisher receives booking lifecycle events. Implementations must be
// safe for concurrent use. A nil publisher disables publishing.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, b *Booking) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, statusName string) (*Booking, error)
	Delete(ctx context.Context, id int64) error

	// LoginLookup resolves a booking-number + guest-name credential pair to the
	// IDs of every booking held under that name. An empty slice means the
	// credentials did not match.
	LoginLookup(ctx context.Context, number, name string) ([]int64, error)

	// ExpireOverdue advances every pending or checked-in booking whose end has
	// passed to the expired status. It returns the number of bookings moved.
	ExpireOverdue(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	rooms  RoomChecker
	events EventPublisher
	locks  *roomLocker
	now    func() time.Time
}

type ServiceOption func(*service)

// WithEventPublisher wires a lifecycle event sink into the service.
func WithEventPublisher(p EventPublisher) ServiceOption {
	return func(s *service) {
		s.events = p
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repo Repository, rooms RoomChecker, opts ...ServiceOption) Service {
	s := &service{
		repo:  repo,
		rooms: rooms,
		locks: newRoomLocker(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate time range
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	// 2. Validate room exists
	exists, err := s.rooms.Exists(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	// Hold the room lock across check and insert so a concurrent create for
	// the same room cannot slip between them.
	s.locks.Lock(req.RoomID)
	defer s.locks.Unlock(req.RoomID)

	// 3. Check for overlaps
	hasOverlap, err := s.repo.HasOverlap(ctx, req.RoomID, req.StartTime, req.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Persist with a fresh booking number, regenerating on the unlikely collision
	b := &Booking{
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Title:     req.Title,
		Status:    StatusPending,
	}

	for attempt := 0; attempt < createNumberAttempts; attempt++ {
		b.Number, err = NewNumber()
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, b)
		if !errors.Is(err, ErrNumberTaken) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventCreated, b)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(b.RoomID)
	defer s.locks.Unlock(b.RoomID)

	// Check overlap against the booking's own room, excluding itself.
	hasOverlap, err := s.repo.HasOverlap(ctx, b.RoomID, req.StartTime, req.EndTime, b.ID)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	b.StartTime = req.StartTime
	b.EndTime = req.EndTime
	b.Title = req.Title

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, statusName string) (*Booking, error) {
	st, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The transition is applied as requested, with no state-machine guard.
	// Reverting a terminal booking is allowed and occasionally used by staff
	// to undo a mistaken cancellation.
	b.Status = st

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if st == StatusCancelled {
		s.publish(ctx, EventCancelled, b)
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) LoginLookup(ctx context.Context, number, name string) ([]int64, error) {
	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if number == "" || name == "" {
		return nil, nil
	}

	b, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(b.Title), name) {
		return nil, nil
	}

	// The guest may hold several reservations under the same name; one valid
	// credential pair grants access to all of them.
	siblings, err := s.repo.ListByTitle(ctx, b.Title)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(siblings))
	for _, sb := range siblings {
		ids = append(ids, sb.ID)
	}
	return ids, nil
}

func (s *service) ExpireOverdue(ctx context.Context) (int, error) {
	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	expired := 0
	var errs []error

	for _, b := range bookings {
		if !b.Overdue(now) {
			continue
		}
		b.Status = StatusExpired
		if err := s.repo.Update(ctx, b); err != nil {
			// Keep sweeping; the next cycle retries whatever failed here.
			errs = append(errs, err)
			continue
		}
		expired++
		s.publish(ctx, EventExpired, b)
	}

	return expired, errors.Join(errs...)
}

func (s *service) publish(ctx context.Context, eventType string, b *Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBookingEvent(ctx, eventType, b); err != nil {
		log.Printf("publish %s event for booking %s failed: %v", eventType, b.Number, err)
	}
}
