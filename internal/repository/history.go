package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordbook/api/internal/model"
)

type HistoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// Touch records a view of wordID by userID, bumping viewed_at when the pair
// already exists.
func (r *HistoryRepository) Touch(ctx context.Context, userID, wordID string) error {
	h := &model.History{UserID: userID, WordID: wordID, ViewedAt: r.now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).
		Create(h).Error
}

// List returns the user's history, most recent first.
func (r *HistoryRepository) List(ctx context.Context, userID string) ([]model.History, error) {
	items := []model.History{}
	err := r.db.WithContext(ctx).
		Preload("Word").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}
