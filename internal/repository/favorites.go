package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordbook/api/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marks wordID as a favorite of userID. Marking twice is a no-op; the
// existing row is returned with its word loaded.
func (r *FavoriteRepository) Add(ctx context.Context, userID, wordID string) (*model.Favorite, error) {
	db := r.db.WithContext(ctx)

	f := &model.Favorite{UserID: userID, WordID: wordID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoNothing: true,
	}).Create(f).Error
	if err != nil {
		return nil, translate(err)
	}

	var saved model.Favorite
	err = db.Preload("Word").
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&saved).Error
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

// Remove deletes the favorite if present. Removing a missing favorite succeeds.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, wordID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, wordID string) (bool, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the user's favorites, oldest first.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]model.Favorite, error) {
	items := []model.Favorite{}
	err := r.db.WithContext(ctx).
		Preload("Word").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}
