package booking

import (
	"time"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64      `json:"id"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Status string     `json:"status"`
	Booker *UserShort `json:"booker"`
	Item   *ItemShort `json:"item"`
}

func toBookingResponse(b *domain.Booking, i *domain.Item, booker *domain.User) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
	}
	if booker != nil {
		resp.Booker = &UserShort{ID: booker.ID, Name: booker.Name}
	}
	if i != nil {
		resp.Item = &ItemShort{ID: i.ID, Name: i.Name}
	}
	return resp
}

func toBookingResponses(rows []repository.BookingDetails) []BookingResponse {
	out := make([]BookingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingResponse{
			ID:     r.ID,
			Start:  r.StartTime,
			End:    r.EndTime,
			Status: r.Status,
			Booker: &UserShort{ID: r.BookerID, Name: r.BookerName},
			Item:   &ItemShort{ID: r.ItemID, Name: r.ItemName},
		})
	}
	return out
}
