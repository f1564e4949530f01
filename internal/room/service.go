package room

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name     string
	Category string
	Capacity int
}

type UpdateRequest struct {
	Name     *string
	Capacity *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategorySleeping:
		return CategorySleeping, nil
	case CategoryMeeting:
		return CategoryMeeting, nil
	}
	return "", ErrInvalidCategory
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	room := &Room{
		Name:     req.Name,
		Category: category,
		Capacity: req.Capacity,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The category is fixed at creation; only name and capacity may change.
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		room.Name = *req.Name
	}

	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		room.Capacity = *req.Capacity
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
