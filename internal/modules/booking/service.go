package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type Service struct {
	bookings BookingRepository
	users    UserRepository
	items    ItemRepository
}

func NewService(bookings BookingRepository, users UserRepository, items ItemRepository) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		items:    items,
	}
}

// Create books an item for the requester. The owner booking their own item
// is reported as NotFound, not Forbidden, so ownership is not leaked.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, requesterID int64) (*BookingResponse, error) {
	booker, err := s.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, fmt.Errorf("%w: item is not available for booking", ErrValidation)
	}
	if item.OwnerID == requesterID {
		return nil, fmt.Errorf("%w: owner cannot book their own item", ErrNotFound)
	}
	if !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: invalid booking dates", ErrValidation)
	}

	b := &domain.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    req.Start,
		End:      req.End,
		Status:   domain.BookingWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBookingResponse(b, item, booker), nil
}

// UpdateStatus decides a waiting booking. Only the item's owner may decide,
// and a booking is decided exactly once.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, approved bool, requesterID int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: only item owner can update booking status", ErrNotFound)
	}
	if b.Status != domain.BookingWaiting {
		return nil, fmt.Errorf("%w: booking status already decided", ErrValidation)
	}

	status := domain.BookingRejected
	if approved {
		status = domain.BookingApproved
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status

	booker, err := s.getUser(ctx, b.BookerID)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(b, item, booker), nil
}

// GetByID is visible to the booker and the item's owner only; anyone else
// gets NotFound.
func (s *Service) GetByID(ctx context.Context, bookingID, requesterID int64) (*BookingResponse, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.getItem(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != requesterID && item.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: only booker or owner can view booking", ErrNotFound)
	}

	booker, err := s.getUser(ctx, b.BookerID)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(b, item, booker), nil
}

func (s *Service) ListByBooker(ctx context.Context, state string, bookerID int64, from, size int) ([]BookingResponse, error) {
	if _, err := s.getUser(ctx, bookerID); err != nil {
		return nil, err
	}
	filter, err := parseStateFilter(state)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(from, size)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListByBooker(ctx, bookerID, filter, time.Now(), size, offset)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(rows), nil
}

func (s *Service) ListByOwner(ctx context.Context, state string, ownerID int64, from, size int) ([]BookingResponse, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	filter, err := parseStateFilter(state)
	if err != nil {
		return nil, err
	}
	offset, err := pageOffset(from, size)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListByOwner(ctx, ownerID, filter, time.Now(), size, offset)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(rows), nil
}

func parseStateFilter(state string) (domain.StateFilter, error) {
	switch f := domain.StateFilter(state); f {
	case domain.FilterAll, domain.FilterCurrent, domain.FilterPast,
		domain.FilterFuture, domain.FilterWaiting, domain.FilterRejected:
		return f, nil
	default:
		return "", fmt.Errorf("%w: Unknown state: %s", ErrValidation, state)
	}
}

// pageOffset converts the original from/size paging (from is an element
// offset) into a page-aligned store offset.
func pageOffset(from, size int) (int, error) {
	if from < 0 || size <= 0 {
		return 0, fmt.Errorf("%w: invalid pagination parameters", ErrValidation)
	}
	return (from / size) * size, nil
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

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking not found with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return b, nil
}
