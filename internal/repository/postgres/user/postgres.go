package user

import (
	"context"
	"errors"

	domain "cepip-app-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertByEmail inserts the user or refreshes profile fields of the existing
// row. Activity and admin flags of an existing row are left untouched.
func (r *PostgresRepository) UpsertByEmail(ctx context.Context, user *domain.User) error {
	updates := map[string]interface{}{
		"name":       user.Name,
		"last_login": user.LastLogin,
	}
	if user.GoogleID != nil {
		updates["google_id"] = user.GoogleID
	}
	if user.Picture != nil {
		updates["picture"] = user.Picture
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(user).Error
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
