package model

import (
	"time"

	"gorm.io/gorm"
)

type Favorite struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_word,priority:1" json:"userId"`
	WordID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_word,priority:2" json:"wordId"`
	Word      *Word     `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"word,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	return assignID(&f.ID)
}
