package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Booking), args.Int(1), args.Error(2)
}

func (m *MockRepository) ListByTitle(ctx context.Context, title string) ([]*Booking, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeBookingID)
	return args.Bool(0), args.Error(1)
}

type MockRoomChecker struct {
	mock.Mock
}

func (m *MockRoomChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingEvent(ctx context.Context, eventType string, b *Booking) error {
	args := m.Called(ctx, eventType, b)
	return args.Error(0)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreate_Success(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	rooms.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(0)).Return(false, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

	b, err := service.Create(ctx, CreateRequest{
		RoomID:    3,
		StartTime: start,
		EndTime:   end,
		Title:     "Ada Lovelace",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, StatusPending, b.Status)
	assert.Len(t, b.Number, 8)
	for _, r := range b.Number {
		assert.Contains(t, numberAlphabet, string(r))
	}

	repo.AssertExpectations(t)
	rooms.AssertExpectations(t)
}

func TestCreate_InvalidTimeRange(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	at := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{name: "start equals end", start: at, end: at},
		{name: "start after end", start: at.Add(time.Hour), end: at},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := service.Create(ctx, CreateRequest{
				RoomID:    3,
				StartTime: tc.start,
				EndTime:   tc.end,
				Title:     "Ada Lovelace",
			})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
			assert.Nil(t, b)
		})
	}

	rooms.AssertNotCalled(t, "Exists")
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_RoomNotFound(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	rooms.On("Exists", ctx, int64(99)).Return(false, nil).Once()

	b, err := service.Create(ctx, CreateRequest{
		RoomID:    99,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Title:     "Ada Lovelace",
	})

	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "HasOverlap")
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_TimeConflict(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rooms.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(0)).Return(true, nil).Once()

	b, err := service.Create(ctx, CreateRequest{
		RoomID:    3,
		StartTime: start,
		EndTime:   end,
		Title:     "Ada Lovelace",
	})

	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_RetriesOnNumberCollision(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rooms.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(0)).Return(false, nil).Once()
	// First insert collides on the number, the retry succeeds.
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(ErrNumberTaken).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

	b, err := service.Create(ctx, CreateRequest{
		RoomID:    3,
		StartTime: start,
		EndTime:   end,
		Title:     "Ada Lovelace",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreate_PublishesCreatedEvent(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	publisher := &MockPublisher{}
	service := NewService(repo, rooms, WithEventPublisher(publisher))

	ctx := context.Background()
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rooms.On("Exists", ctx, int64(3)).Return(true, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(0)).Return(false, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()
	publisher.On("PublishBookingEvent", ctx, EventCreated, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

	_, err := service.Create(ctx, CreateRequest{
		RoomID:    3,
		StartTime: start,
		EndTime:   end,
		Title:     "Ada Lovelace",
	})

	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestUpdate_ExcludesSelfFromOverlapCheck(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	existing := &Booking{
		ID:        7,
		RoomID:    3,
		StartTime: start.Add(-time.Hour),
		EndTime:   start,
		Title:     "Ada Lovelace",
		Status:    StatusPending,
	}

	repo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(7)).Return(false, nil).Once()
	repo.On("Update", ctx, existing).Return(nil).Once()

	b, err := service.Update(ctx, 7, UpdateRequest{
		StartTime: start,
		EndTime:   end,
		Title:     "Ada King",
	})

	assert.NoError(t, err)
	assert.Equal(t, start, b.StartTime)
	assert.Equal(t, end, b.EndTime)
	assert.Equal(t, "Ada King", b.Title)
	repo.AssertExpectations(t)
}

func TestUpdate_TimeConflict(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	existing := &Booking{ID: 7, RoomID: 3, Title: "Ada Lovelace", Status: StatusPending}

	repo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	repo.On("HasOverlap", ctx, int64(3), start, end, int64(7)).Return(true, nil).Once()

	b, err := service.Update(ctx, 7, UpdateRequest{
		StartTime: start,
		EndTime:   end,
		Title:     "Ada Lovelace",
	})

	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateStatus_InvalidName(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()

	b, err := service.UpdateStatus(ctx, 7, "bogus")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, b)
	repo.AssertNotCalled(t, "GetByID")
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateStatus_CaseInsensitive(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	existing := &Booking{ID: 7, RoomID: 3, Status: StatusPending}

	repo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	repo.On("Update", ctx, existing).Return(nil).Once()

	b, err := service.UpdateStatus(ctx, 7, "Checked_In")

	assert.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, b.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_RevertsTerminalStatus(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	existing := &Booking{ID: 7, RoomID: 3, Status: StatusCancelled}

	repo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	repo.On("Update", ctx, existing).Return(nil).Once()

	// Staff may undo a mistaken cancellation; no transition guard applies.
	b, err := service.UpdateStatus(ctx, 7, "pending")

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
}

func TestUpdateStatus_CancelPublishesEvent(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	publisher := &MockPublisher{}
	service := NewService(repo, rooms, WithEventPublisher(publisher))

	ctx := context.Background()
	existing := &Booking{ID: 7, RoomID: 3, Number: "QK7P2M4X", Status: StatusPending}

	repo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	repo.On("Update", ctx, existing).Return(nil).Once()
	publisher.On("PublishBookingEvent", ctx, EventCancelled, existing).Return(nil).Once()

	_, err := service.UpdateStatus(ctx, 7, "cancelled")

	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestLoginLookup_Success(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	primary := &Booking{ID: 42, Number: "QK7P2M4X", Title: "Ada Lovelace"}
	siblings := []*Booking{
		{ID: 42, Title: "Ada Lovelace"},
		{ID: 57, Title: "Ada Lovelace"},
	}

	repo.On("GetByNumber", ctx, "QK7P2M4X").Return(primary, nil).Once()
	repo.On("ListByTitle", ctx, "Ada Lovelace").Return(siblings, nil).Once()

	// The credential pair is matched ignoring case and surrounding whitespace.
	ids, err := service.LoginLookup(ctx, "  QK7P2M4X ", " ada LOVELACE ")

	assert.NoError(t, err)
	assert.Equal(t, []int64{42, 57}, ids)
	repo.AssertExpectations(t)
}

func TestLoginLookup_WrongName(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()
	primary := &Booking{ID: 42, Number: "QK7P2M4X", Title: "Ada Lovelace"}

	repo.On("GetByNumber", ctx, "QK7P2M4X").Return(primary, nil).Once()

	ids, err := service.LoginLookup(ctx, "QK7P2M4X", "Grace Hopper")

	assert.NoError(t, err)
	assert.Empty(t, ids)
	repo.AssertNotCalled(t, "ListByTitle")
}

func TestLoginLookup_UnknownNumber(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()

	repo.On("GetByNumber", ctx, "NOPENOPE").Return(nil, ErrNotFound).Once()

	ids, err := service.LoginLookup(ctx, "NOPENOPE", "Ada Lovelace")

	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoginLookup_BlankCredentials(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()

	testCases := []struct {
		name   string
		number string
		guest  string
	}{
		{name: "empty number", number: "", guest: "Ada Lovelace"},
		{name: "empty name", number: "QK7P2M4X", guest: ""},
		{name: "whitespace only", number: "   ", guest: "  "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := service.LoginLookup(ctx, tc.number, tc.guest)
			assert.NoError(t, err)
			assert.Empty(t, ids)
		})
	}

	repo.AssertNotCalled(t, "GetByNumber")
}

func TestExpireOverdue(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, rooms, WithClock(fixedClock(now)))

	ctx := context.Background()

	overduePending := &Booking{ID: 1, Status: StatusPending, EndTime: now.Add(-time.Hour)}
	overdueCheckedIn := &Booking{ID: 2, Status: StatusCheckedIn, EndTime: now.Add(-time.Minute)}
	pastCancelled := &Booking{ID: 3, Status: StatusCancelled, EndTime: now.Add(-time.Hour)}
	futurePending := &Booking{ID: 4, Status: StatusPending, EndTime: now.Add(time.Hour)}

	repo.On("ListAll", ctx).Return([]*Booking{overduePending, overdueCheckedIn, pastCancelled, futurePending}, nil).Once()
	repo.On("Update", ctx, overduePending).Return(nil).Once()
	repo.On("Update", ctx, overdueCheckedIn).Return(nil).Once()

	count, err := service.ExpireOverdue(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, StatusExpired, overduePending.Status)
	assert.Equal(t, StatusExpired, overdueCheckedIn.Status)
	assert.Equal(t, StatusCancelled, pastCancelled.Status)
	assert.Equal(t, StatusPending, futurePending.Status)
	repo.AssertExpectations(t)
}

func TestExpireOverdue_Idempotent(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, rooms, WithClock(fixedClock(now)))

	ctx := context.Background()

	// Already expired by a previous sweep; nothing to do.
	alreadyExpired := &Booking{ID: 1, Status: StatusExpired, EndTime: now.Add(-time.Hour)}

	repo.On("ListAll", ctx).Return([]*Booking{alreadyExpired}, nil).Once()

	count, err := service.ExpireOverdue(ctx)

	assert.NoError(t, err)
	assert.Zero(t, count)
	repo.AssertNotCalled(t, "Update")
}

func TestExpireOverdue_ContinuesPastUpdateError(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, rooms, WithClock(fixedClock(now)))

	ctx := context.Background()

	first := &Booking{ID: 1, Status: StatusPending, EndTime: now.Add(-time.Hour)}
	second := &Booking{ID: 2, Status: StatusPending, EndTime: now.Add(-time.Hour)}

	updateErr := errors.New("connection reset")
	repo.On("ListAll", ctx).Return([]*Booking{first, second}, nil).Once()
	repo.On("Update", ctx, first).Return(updateErr).Once()
	repo.On("Update", ctx, second).Return(nil).Once()

	count, err := service.ExpireOverdue(ctx)

	assert.Error(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestExpireOverdue_PublishesExpiredEvents(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	publisher := &MockPublisher{}
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, rooms, WithClock(fixedClock(now)), WithEventPublisher(publisher))

	ctx := context.Background()

	overdue := &Booking{ID: 1, Number: "QK7P2M4X", Status: StatusPending, EndTime: now.Add(-time.Hour)}

	repo.On("ListAll", ctx).Return([]*Booking{overdue}, nil).Once()
	repo.On("Update", ctx, overdue).Return(nil).Once()
	publisher.On("PublishBookingEvent", ctx, EventExpired, overdue).Return(nil).Once()

	count, err := service.ExpireOverdue(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	publisher.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &MockRepository{}
	rooms := &MockRoomChecker{}
	service := NewService(repo, rooms)

	ctx := context.Background()

	repo.On("GetByID", ctx, int64(404)).Return(nil, ErrNotFound).Once()

	err := service.Delete(ctx, 404)

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}
