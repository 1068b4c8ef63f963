package model

import (
	"time"

	"gorm.io/gorm"
)

// History records that a user looked a word up. One row per (user, word);
// repeated lookups bump ViewedAt.
type History struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_history_user_word,priority:1;index:idx_history_user_viewed,priority:1" json:"userId"`
	WordID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_history_user_word,priority:2" json:"wordId"`
	Word     *Word     `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"word,omitempty"`
	ViewedAt time.Time `gorm:"not null;index:idx_history_user_viewed,priority:2,sort:desc" json:"viewedAt"`
}

func (History) TableName() string {
	return "histories"
}

func (h *History) BeforeCreate(*gorm.DB) error {
	return assignID(&h.ID)
}
