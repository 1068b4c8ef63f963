package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/model"
)

type WordRepository struct {
	db *gorm.DB
}

func NewWordRepository(db *gorm.DB) *WordRepository {
	return &WordRepository{db: db}
}

func (r *WordRepository) FindByID(ctx context.Context, id string) (*model.Word, error) {
	var w model.Word
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *WordRepository) FindByValue(ctx context.Context, value string) (*model.Word, error) {
	var w model.Word
	if err := r.db.WithContext(ctx).Where("value = ?", strings.ToLower(value)).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// Range implements catalog.Store.
func (r *WordRepository) Range(ctx context.Context, q catalog.RangeQuery) ([]model.Word, error) {
	tx := r.filtered(ctx, q.Prefix)

	if b := q.After; b != nil {
		tx = tx.Where("(value > ? OR (value = ? AND id > ?))", b.Value, b.Value, b.ID)
	}
	if b := q.Before; b != nil {
		tx = tx.Where("(value < ? OR (value = ? AND id < ?))", b.Value, b.Value, b.ID)
	}

	desc := q.Order == catalog.Descending
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "value"}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	words := []model.Word{}
	if err := tx.Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (r *WordRepository) Count(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.filtered(ctx, prefix).Count(&n).Error
	return n, err
}

// Create inserts a single word, stored lowercased.
func (r *WordRepository) Create(ctx context.Context, value string) (*model.Word, error) {
	w := &model.Word{Value: strings.ToLower(value)}
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, translate(err)
	}
	return w, nil
}

// CreateMany inserts values in batches, skipping any that already exist. It
// returns the number of rows actually inserted.
func (r *WordRepository) CreateMany(ctx context.Context, values []string, batchSize int) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	words := make([]model.Word, 0, len(values))
	for _, v := range values {
		words = append(words, model.Word{Value: strings.ToLower(v)})
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "value"}}, DoNothing: true}).
		CreateInBatches(&words, batchSize)
	return res.RowsAffected, res.Error
}

func (r *WordRepository) filtered(ctx context.Context, prefix string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Word{})
	if prefix != "" {
		tx = tx.Where(`LOWER(value) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(prefix))+"%")
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	default:
		return err
	}
}
