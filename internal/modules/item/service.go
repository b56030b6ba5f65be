package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type Service struct {
	items    ItemRepository
	users    UserRepository
	bookings BookingRepository
	comments CommentRepository
}

func NewService(items ItemRepository, users UserRepository, bookings BookingRepository, comments CommentRepository) *Service {
	return &Service{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
	}
}

func (s *Service) AddItem(ctx context.Context, req CreateItemRequest, ownerID int64) (*ItemResponse, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: item description cannot be empty", ErrValidation)
	}
	if req.Available == nil {
		return nil, fmt.Errorf("%w: available field cannot be null", ErrValidation)
	}

	i := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, i); err != nil {
		return nil, err
	}
	return toItemResponse(i), nil
}

// UpdateItem applies a partial update. A requester who is not the owner gets
// NotFound rather than Forbidden, so item ownership is not leaked.
func (s *Service) UpdateItem(ctx context.Context, itemID int64, req UpdateItemRequest, ownerID int64) (*ItemResponse, error) {
	i, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if i.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: user %d is not the owner of item %d", ErrNotFound, ownerID, itemID)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		i.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.items.Update(ctx, i); err != nil {
		return nil, err
	}
	return toItemResponse(i), nil
}

// GetByID returns the item with its comments. Booking neighbours (last and
// next approved booking) are attached only for the owner.
func (s *Service) GetByID(ctx context.Context, itemID, requesterID int64) (*ItemResponse, error) {
	i, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(i)
	if i.OwnerID == requesterID {
		if err := s.attachBookings(ctx, resp); err != nil {
			return nil, err
		}
	}
	if err := s.attachComments(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemResponse, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	offset, err := pageOffset(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByOwner(ctx, ownerID, size, offset)
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, 0, len(items))
	for idx := range items {
		resp := toItemResponse(&items[idx])
		if err := s.attachBookings(ctx, resp); err != nil {
			return nil, err
		}
		if err := s.attachComments(ctx, resp); err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Search matches available items by name or description substring. Blank
// text yields an empty result, not an error.
func (s *Service) Search(ctx context.Context, text string, from, size int) ([]ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemResponse{}, nil
	}
	offset, err := pageOffset(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.Search(ctx, text, size, offset)
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, 0, len(items))
	for idx := range items {
		out = append(out, *toItemResponse(&items[idx]))
	}
	return out, nil
}

// AddComment lets a renter comment on an item after an approved booking of
// theirs has ended.
func (s *Service) AddComment(ctx context.Context, itemID int64, req CommentRequest, authorID int64) (*CommentResponse, error) {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getItem(ctx, itemID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: comment text cannot be blank", ErrValidation)
	}

	completed, err := s.bookings.HasCompletedBooking(ctx, itemID, authorID, time.Now())
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, fmt.Errorf("%w: user can only comment on items they have booked in the past", ErrValidation)
	}

	c := &domain.Comment{
		Text:     req.Text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  time.Now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return &CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: author.Name,
		Created:    c.Created,
	}, nil
}

func (s *Service) attachBookings(ctx context.Context, resp *ItemResponse) error {
	now := time.Now()

	last, err := s.bookings.FindLastForItem(ctx, resp.ID, now)
	if err != nil {
		return err
	}
	resp.LastBooking = toBookingShort(last)

	next, err := s.bookings.FindNextForItem(ctx, resp.ID, now)
	if err != nil {
		return err
	}
	resp.NextBooking = toBookingShort(next)
	return nil
}

func (s *Service) attachComments(ctx context.Context, resp *ItemResponse) error {
	rows, err := s.comments.ListByItem(ctx, resp.ID)
	if err != nil {
		return err
	}
	resp.Comments = toCommentResponses(rows)
	return nil
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) getItem(ctx context.Context, id int64) (*domain.Item, error) {
	i, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: item not found with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return i, nil
}

// pageOffset converts the original from/size paging (from is an element
// offset) into a page-aligned store offset.
func pageOffset(from, size int) (int, error) {
	if from < 0 || size <= 0 {
		return 0, fmt.Errorf("%w: invalid pagination parameters", ErrValidation)
	}
	return (from / size) * size, nil
}
