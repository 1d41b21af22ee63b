package repository

import (
	"context"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"

	"gorm.io/gorm"
)

type PaymentMethodGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentMethodGormRepository(db *gorm.DB) *PaymentMethodGormRepository {
	return &PaymentMethodGormRepository{db: db}
}

func (r *PaymentMethodGormRepository) Create(ctx context.Context, pm model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(&pm).Error
}

func (r *PaymentMethodGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&methods).Error; err != nil {
		return []model.PaymentMethod{}, err
	}
	return methods, nil
}

// 自分のカードだけ消せる
func (r *PaymentMethodGormRepository) DeleteByUser(ctx context.Context, userID string, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.PaymentMethod{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
