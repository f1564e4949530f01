package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, room *Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Room), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Room), args.Int(1), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, room *Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_Validation(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	testCases := []struct {
		name     string
		req      CreateRequest
		expected error
	}{
		{
			name:     "empty name",
			req:      CreateRequest{Name: "  ", Category: "sleeping", Capacity: 2},
			expected: ErrEmptyName,
		},
		{
			name:     "unknown category",
			req:      CreateRequest{Name: "Suite 101", Category: "ballroom", Capacity: 2},
			expected: ErrInvalidCategory,
		},
		{
			name:     "zero capacity",
			req:      CreateRequest{Name: "Suite 101", Category: "sleeping", Capacity: 0},
			expected: ErrInvalidCapacity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := service.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, r)
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestCreate_CategoryCaseInsensitive(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*room.Room")).Return(nil).Once()

	r, err := service.Create(ctx, CreateRequest{Name: "Boardroom", Category: " Meeting ", Capacity: 12})

	assert.NoError(t, err)
	assert.Equal(t, CategoryMeeting, r.Category)
	repo.AssertExpectations(t)
}

func TestUpdate_CategoryIsFixed(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	existing := &Room{ID: 3, Name: "Suite 101", Category: CategorySleeping, Capacity: 2}

	repo.On("GetByID", ctx, int64(3)).Return(existing, nil).Once()
	repo.On("Update", ctx, existing).Return(nil).Once()

	newName := "Suite 101 Deluxe"
	newCapacity := 4
	r, err := service.Update(ctx, 3, UpdateRequest{Name: &newName, Capacity: &newCapacity})

	assert.NoError(t, err)
	assert.Equal(t, "Suite 101 Deluxe", r.Name)
	assert.Equal(t, 4, r.Capacity)
	assert.Equal(t, CategorySleeping, r.Category)
	repo.AssertExpectations(t)
}

func TestUpdate_RejectsBlankName(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	existing := &Room{ID: 3, Name: "Suite 101", Category: CategorySleeping, Capacity: 2}
	repo.On("GetByID", ctx, int64(3)).Return(existing, nil).Once()

	blank := "   "
	r, err := service.Update(ctx, 3, UpdateRequest{Name: &blank})

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Nil(t, r)
	repo.AssertNotCalled(t, "Update")
}

func TestDelete_ChecksExistence(t *testing.T) {
	repo := &MockRepository{}
	service := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(404)).Return(nil, ErrNotFound).Once()

	err := service.Delete(ctx, 404)

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}
