package repository

import (
	"context"

	"delivery_ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RateRepository interface {
	GetAll(ctx context.Context) ([]models.AreaRate, error)
	Upsert(ctx context.Context, rate *models.AreaRate) error
}

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) GetAll(ctx context.Context) ([]models.AreaRate, error) {
	var rates []models.AreaRate
	err := r.db.WithContext(ctx).Order("area ASC").Find(&rates).Error
	return rates, err
}

// Upsert creates or replaces the setting for rate.Area. Only one area may be
// the RVP default, so flagging one clears the others.
func (r *rateRepository) Upsert(ctx context.Context, rate *models.AreaRate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rate.IsRVPDefault {
			err := tx.Model(&models.AreaRate{}).
				Where("area <> ?", rate.Area).
				Update("is_rvp_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "area"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "company_rate", "courier_rate", "is_rvp_default", "is_active", "updated_at"}),
		}).Create(rate).Error
	})
}
