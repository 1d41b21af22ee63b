package repository

import (
	"context"
	"time"

	"clothco/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 明細1件を1行で持つカート保存先。主キーは (product_id, size)。
type BasketGormRepository struct {
	db *gorm.DB
}

// DI
func NewBasketGormRepository(db *gorm.DB) *BasketGormRepository {
	return &BasketGormRepository{db: db}
}

// upsert時に上書きする列（positionは最初に入れた時のまま）
var basketUpdateColumns = []string{
	"line_key", "name", "price", "description", "image", "category",
	"sizes", "color", "stock", "featured", "quantity",
}

// 追加順に返す
func (r *BasketGormRepository) GetAll(ctx context.Context) ([]model.BasketRecord, error) {
	var recs []model.BasketRecord

	if err := r.db.WithContext(ctx).
		Order("position asc").
		Order("product_id asc").
		Order("size asc").
		Find(&recs).Error; err != nil {
		return []model.BasketRecord{}, err
	}
	return recs, nil
}

// 同じキーは上書き。positionは新しい行の時だけ入る（無ければ今の時刻）。
func (r *BasketGormRepository) Put(ctx context.Context, rec model.BasketRecord) error {
	rec.LineKey = rec.Key().String()
	if rec.Position == 0 {
		rec.Position = time.Now().UnixNano()
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "size"}},
			DoUpdates: clause.AssignmentColumns(basketUpdateColumns),
		}).
		Create(&rec).Error
}

// 無くてもエラーにしない
func (r *BasketGormRepository) Delete(ctx context.Context, key model.LineKey) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND size = ?", key.ProductID, key.Size).
		Delete(&model.BasketRecord{}).Error
}

// 明細を全削除
func (r *BasketGormRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.BasketRecord{}).Error
}
