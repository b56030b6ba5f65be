package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	Text     string    `gorm:"column:text"`
	ItemID   int64     `gorm:"column:item_id;index"`
	AuthorID int64     `gorm:"column:author_id"`
	Created  time.Time `gorm:"column:created"`
}

func (commentModel) TableName() string { return "comments" }

func toDomainComment(m commentModel) *domain.Comment {
	return &domain.Comment{
		ID:       m.ID,
		Text:     m.Text,
		ItemID:   m.ItemID,
		AuthorID: m.AuthorID,
		Created:  m.Created,
	}
}

func toCommentModel(c *domain.Comment) commentModel {
	return commentModel{
		ID:       c.ID,
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Created:  c.Created,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := toCommentModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainComment(m)
	return nil
}

// CommentDetails is a comment row joined with the author's display name.
type CommentDetails struct {
	ID         int64     `gorm:"column:id"`
	Text       string    `gorm:"column:text"`
	AuthorName string    `gorm:"column:author_name"`
	Created    time.Time `gorm:"column:created"`
}

func (r *CommentRepository) ListByItem(ctx context.Context, itemID int64) ([]CommentDetails, error) {
	var rows []CommentDetails
	tx := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.text, comments.created, users.name AS author_name").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.item_id = ?", itemID).
		Order("comments.created DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
