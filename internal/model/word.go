package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Word is a catalog entry. IDs are UUIDv7 so lexical order follows
// insertion order, which keeps (value, id) a stable sort key.
type Word struct {
	ID    string `gorm:"type:varchar(36);primaryKey;index:idx_words_value_id,priority:2" json:"id"`
	Value string `gorm:"size:255;not null;uniqueIndex;index:idx_words_value_id,priority:1" json:"value"`
}

func (Word) TableName() string {
	return "words"
}

func (w *Word) BeforeCreate(*gorm.DB) error {
	return assignID(&w.ID)
}

func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	v, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = v.String()
	return nil
}
