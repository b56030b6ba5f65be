package item

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type ItemRepository interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]domain.Item, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BookingRepository is the booking surface needed for item augmentation and
// the comment eligibility check.
type BookingRepository interface {
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]repository.CommentDetails, error)
}
