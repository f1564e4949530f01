package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/roomkeeper/room-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrNumberTaken      = apperror.New(http.StatusConflict, "booking number already in use")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCheckedIn Status = "checked_in"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a status name to a Status, case-insensitively.
func ParseStatus(name string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(name))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCheckedIn:
		return StatusCheckedIn, nil
	case StatusExpired:
		return StatusExpired, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", ErrInvalidStatus
}

// IsTerminal reports whether no automatic transition ever leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

type Booking struct {
	ID        int64
	RoomID    int64
	RoomName  string
	StartTime time.Time
	EndTime   time.Time
	// Title holds the guest's identifying name or email. Together with the
	// booking number it forms the guest login credential pair.
	Title string
	// Number is the public 8-character confirmation code, distinct from ID.
	Number    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt reports whether t falls inside the booked interval [start, end).
// It ignores status; it is a display helper, not a lifecycle check.
func (b *Booking) ActiveAt(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap: a booking
// ending at T never conflicts with one starting at T. The repository's
// HasOverlap predicate is this rule rendered in SQL.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overdue reports whether the booking should be moved to expired at time now.
func (b *Booking) Overdue(now time.Time) bool {
	if b.Status != StatusPending && b.Status != StatusCheckedIn {
		return false
	}
	return b.EndTime.Before(now)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RoomID    int64
	Status    string
	StartTime *time.Time // Filter bookings ending after this time
	EndTime   *time.Time // Filter bookings starting before this time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
