package booking

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ListByBooker(ctx context.Context, bookerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]repository.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]repository.BookingDetails, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}
