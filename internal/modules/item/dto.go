package item

import (
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest is a partial update: nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingShort is the owner-facing summary of a neighbouring booking.
type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShort     `json:"lastBooking,omitempty"`
	NextBooking *BookingShort     `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
}

func toItemResponse(i *domain.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func toBookingShort(b *domain.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID}
}

func toCommentResponses(rows []repository.CommentDetails) []CommentResponse {
	out := make([]CommentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CommentResponse{
			ID:         r.ID,
			Text:       r.Text,
			AuthorName: r.AuthorName,
			Created:    r.Created,
		})
	}
	return out
}
