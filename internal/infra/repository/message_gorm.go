package repository

import (
	"context"
	"errors"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"

	"gorm.io/gorm"
)

type MessageGormRepository struct {
	db *gorm.DB
}

// DI
func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) Create(ctx context.Context, m model.Message) error {
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *MessageGormRepository) FindByID(ctx context.Context, id string) (model.Message, error) {
	var m model.Message

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Message{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Message{}, err
	}
	return m, nil
}

// 既読/未読で絞り込み（新しい順）
func (r *MessageGormRepository) List(ctx context.Context, f repo.MessageFilter) ([]model.Message, error) {
	var msgs []model.Message

	tx := r.db.WithContext(ctx).Model(&model.Message{})
	switch f {
	case repo.MessageFilterUnread:
		tx = tx.Where("is_read = ?", false)
	case repo.MessageFilterRead:
		tx = tx.Where("is_read = ?", true)
	}

	if err := tx.Order("date desc").Order("id desc").Find(&msgs).Error; err != nil {
		return []model.Message{}, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Message, error) {
	var msgs []model.Message

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Order("id desc").
		Find(&msgs).Error; err != nil {
		return []model.Message{}, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("is_read = ?", false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 既読フラグと返信を書き戻す
func (r *MessageGormRepository) Update(ctx context.Context, m model.Message) error {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", m.ID).
		Select("is_read", "replies").
		Updates(&m)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
