package settings

import (
	"context"
	"errors"

	settingsdomain "cepip-app-go/internal/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Load(ctx context.Context) (*settingsdomain.Settings, error) {
	var stored settingsdomain.Settings
	if err := r.db.WithContext(ctx).Order("id").First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settingsdomain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &stored, nil
}

func (r *PostgresRepository) Save(ctx context.Context, settings *settingsdomain.Settings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"app_name",
				"records_per_page",
				"theme",
				"language",
				"notifications",
				"updated_at",
			}),
		}).
		Create(settings).Error
}
