package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shareit/internal/domain"
	"shareit/internal/repository"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, i *domain.Item) error {
	args := m.Called(ctx, i)
	if i != nil && args.Error(0) == nil {
		i.ID = 1 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, i *domain.Item) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, text string, limit, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, text, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Bool(0), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	if c != nil && args.Error(0) == nil {
		c.ID = 1 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]repository.CommentDetails, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CommentDetails), args.Error(1)
}

func newMocks() (*MockItemRepository, *MockUserRepository, *MockBookingRepository, *MockCommentRepository, *Service) {
	items := new(MockItemRepository)
	users := new(MockUserRepository)
	bookings := new(MockBookingRepository)
	comments := new(MockCommentRepository)
	return items, users, bookings, comments, NewService(items, users, bookings, comments)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestService_AddItem_Success(t *testing.T) {
	items, users, _, _, service := newMocks()

	users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Name: "Alice"}, nil)
	items.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Item) bool {
		return i.Name == "Drill" && i.OwnerID == 1 && i.Available
	})).Return(nil)

	req := CreateItemRequest{Name: "Drill", Description: "Cordless", Available: boolPtr(true)}
	i, err := service.AddItem(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), i.ID)
	items.AssertExpectations(t)
}

func TestService_AddItem_MissingOwner(t *testing.T) {
	_, users, _, _, service := newMocks()

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	req := CreateItemRequest{Name: "Drill", Description: "Cordless", Available: boolPtr(true)}
	_, err := service.AddItem(context.Background(), req, 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_AddItem_Invalid(t *testing.T) {
	_, users, _, _, service := newMocks()

	users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Name: "Alice"}, nil)

	cases := []CreateItemRequest{
		{Name: " ", Description: "Cordless", Available: boolPtr(true)},
		{Name: "Drill", Description: "", Available: boolPtr(true)},
		{Name: "Drill", Description: "Cordless", Available: nil},
	}
	for _, req := range cases {
		_, err := service.AddItem(context.Background(), req, 1)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_UpdateItem_NotOwner(t *testing.T) {
	items, users, _, _, service := newMocks()

	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", OwnerID: 1}, nil)
	users.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Name: "Bob"}, nil)

	_, err := service.UpdateItem(context.Background(), 10, UpdateItemRequest{Name: strPtr("Hammer")}, 2)

	// reported as not-found, not forbidden
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateItem_PartialIgnoresBlank(t *testing.T) {
	items, users, _, _, service := newMocks()

	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", Description: "Cordless", Available: true, OwnerID: 1}, nil)
	users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Name: "Alice"}, nil)
	items.On("Update", mock.Anything, mock.MatchedBy(func(i *domain.Item) bool {
		return i.Name == "Drill" && i.Description == "Cordless" && !i.Available
	})).Return(nil)

	req := UpdateItemRequest{Name: strPtr("  "), Available: boolPtr(false)}
	i, err := service.UpdateItem(context.Background(), 10, req, 1)

	assert.NoError(t, err)
	assert.Equal(t, "Drill", i.Name)
	assert.False(t, i.Available)
	items.AssertExpectations(t)
}

func TestService_GetByID_OwnerSeesBookings(t *testing.T) {
	items, _, bookings, comments, service := newMocks()

	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", OwnerID: 1}, nil)
	bookings.On("FindLastForItem", mock.Anything, int64(10), mock.Anything).
		Return(&domain.Booking{ID: 3, BookerID: 2}, nil)
	bookings.On("FindNextForItem", mock.Anything, int64(10), mock.Anything).
		Return(&domain.Booking{ID: 4, BookerID: 5}, nil)
	comments.On("ListByItem", mock.Anything, int64(10)).
		Return([]repository.CommentDetails{{ID: 1, Text: "great", AuthorName: "Bob"}}, nil)

	resp, err := service.GetByID(context.Background(), 10, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), resp.LastBooking.ID)
	assert.Equal(t, int64(5), resp.NextBooking.BookerID)
	assert.Len(t, resp.Comments, 1)
}

func TestService_GetByID_StrangerSeesNoBookings(t *testing.T) {
	items, _, _, comments, service := newMocks()

	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", OwnerID: 1}, nil)
	comments.On("ListByItem", mock.Anything, int64(10)).
		Return([]repository.CommentDetails{}, nil)

	resp, err := service.GetByID(context.Background(), 10, 2)

	assert.NoError(t, err)
	assert.Nil(t, resp.LastBooking)
	assert.Nil(t, resp.NextBooking)
}

func TestService_Search_BlankText(t *testing.T) {
	_, _, _, _, service := newMocks()

	out, err := service.Search(context.Background(), "   ", 0, 10)

	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestService_Search_OnlyDelegates(t *testing.T) {
	items, _, _, _, service := newMocks()

	items.On("Search", mock.Anything, "drill", 10, 0).
		Return([]domain.Item{{ID: 10, Name: "Drill", Available: true, OwnerID: 1}}, nil)

	out, err := service.Search(context.Background(), "drill", 0, 10)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Drill", out[0].Name)
}

func TestService_AddComment_RequiresCompletedBooking(t *testing.T) {
	items, users, bookings, _, service := newMocks()

	users.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Name: "Bob"}, nil)
	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", OwnerID: 1}, nil)
	bookings.On("HasCompletedBooking", mock.Anything, int64(10), int64(2), mock.Anything).
		Return(false, nil)

	_, err := service.AddComment(context.Background(), 10, CommentRequest{Text: "great"}, 2)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_AddComment_Success(t *testing.T) {
	items, users, bookings, comments, service := newMocks()

	users.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Name: "Bob"}, nil)
	items.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Item{ID: 10, Name: "Drill", OwnerID: 1}, nil)
	bookings.On("HasCompletedBooking", mock.Anything, int64(10), int64(2), mock.Anything).
		Return(true, nil)
	comments.On("Create", mock.Anything, mock.Anything).Return(nil)

	c, err := service.AddComment(context.Background(), 10, CommentRequest{Text: "great"}, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "Bob", c.AuthorName)
	assert.False(t, c.Created.IsZero())
	comments.AssertExpectations(t)
}

func TestService_ListByOwner_Augments(t *testing.T) {
	items, users, bookings, comments, service := newMocks()

	users.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Name: "Alice"}, nil)
	items.On("ListByOwner", mock.Anything, int64(1), 10, 0).
		Return([]domain.Item{{ID: 10, Name: "Drill", OwnerID: 1}}, nil)
	bookings.On("FindLastForItem", mock.Anything, int64(10), mock.Anything).Return(nil, nil)
	bookings.On("FindNextForItem", mock.Anything, int64(10), mock.Anything).Return(nil, nil)
	comments.On("ListByItem", mock.Anything, int64(10)).
		Return([]repository.CommentDetails{}, nil)

	out, err := service.ListByOwner(context.Background(), 1, 0, 10)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Nil(t, out[0].LastBooking)
}
