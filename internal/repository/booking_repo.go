package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ItemID    int64     `gorm:"column:item_id;index"`
	BookerID  int64     `gorm:"column:booker_id;index"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		ItemID:    m.ItemID,
		BookerID:  m.BookerID,
		Start:     m.StartTime,
		End:       m.EndTime,
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		StartTime: b.Start,
		EndTime:   b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookingDetails is a booking row joined with the item and booker names, so
// list endpoints do not need a query per row.
type BookingDetails struct {
	ID         int64     `gorm:"column:id"`
	ItemID     int64     `gorm:"column:item_id"`
	BookerID   int64     `gorm:"column:booker_id"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Status     string    `gorm:"column:status"`
	ItemName   string    `gorm:"column:item_name"`
	BookerName string    `gorm:"column:booker_name"`
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()}).
		Error
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]BookingDetails, error) {
	q := r.detailsQuery(ctx).Where("bookings.booker_id = ?", bookerID)
	return r.listFiltered(q, filter, now, limit, offset)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]BookingDetails, error) {
	q := r.detailsQuery(ctx).Where("items.owner_id = ?", ownerID)
	return r.listFiltered(q, filter, now, limit, offset)
}

func (r *BookingRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.id, bookings.item_id, bookings.booker_id, bookings.start_time, bookings.end_time, bookings.status, items.name AS item_name, users.name AS booker_name").
		Joins("JOIN items ON items.id = bookings.item_id").
		Joins("JOIN users ON users.id = bookings.booker_id")
}

func (r *BookingRepository) listFiltered(q *gorm.DB, filter domain.StateFilter, now time.Time, limit, offset int) ([]BookingDetails, error) {
	switch filter {
	case domain.FilterAll:
	case domain.FilterCurrent:
		q = q.Where("bookings.start_time <= ? AND bookings.end_time > ?", now, now)
	case domain.FilterPast:
		q = q.Where("bookings.end_time < ?", now)
	case domain.FilterFuture:
		q = q.Where("bookings.start_time > ?", now)
	case domain.FilterWaiting, domain.FilterRejected:
		q = q.Where("bookings.status = ?", string(filter))
	}

	var rows []BookingDetails
	tx := q.Order("bookings.start_time DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// FindLastForItem returns the approved booking with the latest start before
// now, or nil when the item has none.
func (r *BookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_time < ?", itemID, string(domain.BookingApproved), now).
		Order("start_time DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindNextForItem returns the approved booking with the earliest start after
// now, or nil when the item has none.
func (r *BookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_time > ?", itemID, string(domain.BookingApproved), now).
		Order("start_time ASC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// HasCompletedBooking reports whether the booker holds an approved booking of
// the item that already ended.
func (r *BookingRepository) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_time < ?",
			itemID, bookerID, string(domain.BookingApproved), now).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
