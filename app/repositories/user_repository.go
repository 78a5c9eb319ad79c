package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
)

// UserRepository handles the users table.
type UserRepository struct {
	Repository[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return UserRepository{newRepository[models.User](db, "User not found")}
}

// FindByEmail returns the user with email, or (nil, nil) when absent.
func (r UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}
