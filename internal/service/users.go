package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

func (s *Service) User(ctx context.Context, id int64) (*models.User, error) {
	return s.store.Users().Load(ctx, id)
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.store.Users().FindAll(ctx, nil)
}

// Teachers lists active users with the TEACHER role.
func (s *Service) Teachers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().FindAll(ctx, func(u *models.User) bool { return u.Role == models.Teacher && u.IsActive })
}

// UpdateUser edits profile fields. The password hash, creation and last
// login times are kept from the stored row.
func (s *Service) UpdateUser(ctx context.Context, u *models.User) error {
	u.Email = validate.NormalizeEmail(u.Email)
	if err := validate.User(u); err != nil {
		return err
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		prev, err := tx.Users().Load(ctx, u.ID)
		if err != nil {
			return err
		}
		if err := validate.ValidateUserEmail(ctx, tx, u.Email, u.ID); err != nil {
			return err
		}
		u.PasswordHash, u.CreatedAt, u.LastLoginAt = prev.PasswordHash, prev.CreatedAt, prev.LastLoginAt
		return tx.Users().Save(ctx, u)
	})
	return s.logged("user updated", err, zap.Int64("user_id", u.ID))
}
