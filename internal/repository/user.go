package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// PublicProfiles resolves ids to public projections. Unknown ids are
	// absent from the result.
	PublicProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.PublicProfile, error)
}

type userRepository struct {
	store
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{store{db: db}}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.run(ctx, "users.create", func(db *gorm.DB) error {
		return db.Create(user).Error
	})
	return translate("users.create", "user", user.Email, err)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.run(ctx, "users.find_by_id", func(db *gorm.DB) error {
		return db.First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate("users.find_by_id", "user", id.String(), err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.run(ctx, "users.find_by_email", func(db *gorm.DB) error {
		return db.First(&user, "email = ?", email).Error
	})
	if err != nil {
		return nil, translate("users.find_by_email", "user", email, err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.run(ctx, "users.list", func(db *gorm.DB) error {
		return db.Order("created_at ASC").Find(&users).Error
	})
	return users, translate("users.list", "user", "", err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	err := r.run(ctx, "users.update_password", func(db *gorm.DB) error {
		res := db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("users.update_password", "user", id.String(), err)
}

func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	err := r.run(ctx, "users.update_role", func(db *gorm.DB) error {
		res := db.Model(&model.User{}).Where("id = ?", id).Update("role", role)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("users.update_role", "user", id.String(), err)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.run(ctx, "users.delete", func(db *gorm.DB) error {
		res := db.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("users.delete", "user", id.String(), err)
}

func (r *userRepository) PublicProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.PublicProfile, error) {
	profiles := make(map[uuid.UUID]model.PublicProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}
	var rows []model.PublicProfile
	err := r.run(ctx, "users.public_profiles", func(db *gorm.DB) error {
		return db.Model(&model.User{}).
			Select("id", "username", "profile_image").
			Where("id IN ?", ids).
			Find(&rows).Error
	})
	if err != nil {
		return nil, translate("users.public_profiles", "user", "", err)
	}
	for _, p := range rows {
		profiles[p.ID] = p
	}
	return profiles, nil
}
