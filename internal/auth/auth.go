// Package auth is the simple credential check plus the CurrentUser lookup
// used to stamp document authorship.
package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/ctxutil"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/validate"
)

// ErrBadCredentials covers unknown e-mail, wrong password and inactive
// accounts alike.
var ErrBadCredentials = errdefs.Validation("credentials", "e-mail or password not recognised")

type Service struct {
	store store.Store
	now   func() time.Time
	cost  int
}

func New(s store.Store) *Service {
	return &Service{store: s, now: time.Now, cost: bcrypt.DefaultCost}
}

// WithCost lowers the bcrypt cost, for tests.
func (a *Service) WithCost(cost int) *Service {
	a.cost = cost
	return a
}

// Register stores u with a bcrypt hash of password. The e-mail is
// normalized and must be unused.
func (a *Service) Register(ctx context.Context, u *models.User, password string) error {
	u.Email = validate.NormalizeEmail(u.Email)
	if err := validate.User(u); err != nil {
		return err
	}
	if len(password) < 4 {
		return errdefs.Validation("password", "must have at least 4 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return errdefs.Validation("password", err.Error())
	}
	return a.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		if err := validate.ValidateUserEmail(ctx, tx, u.Email, u.ID); err != nil {
			return err
		}
		u.PasswordHash = string(hash)
		if u.CreatedAt.IsZero() {
			u.CreatedAt = a.now()
		}
		return tx.Users().Save(ctx, u)
	})
}

// Authenticate checks the credentials of an active user and records the
// login time.
func (a *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = validate.NormalizeEmail(email)
	var out *models.User
	err := a.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		users, err := tx.Users().FindAll(ctx, func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
		if err != nil {
			return err
		}
		if len(users) == 0 || !users[0].IsActive {
			return ErrBadCredentials
		}
		u := users[0]
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return ErrBadCredentials
		}
		now := a.now()
		u.LastLoginAt = &now
		if err := tx.Users().Save(ctx, &u); err != nil {
			return err
		}
		out = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentUser resolves the user carried by ctx. It returns nil, nil when ctx
// has no actor.
func CurrentUser(ctx context.Context, s store.Store) (*models.User, error) {
	id, ok := ctxutil.UserID(ctx)
	if !ok {
		return nil, nil
	}
	return s.Users().Load(ctx, id)
}

// Login authenticates and returns a context carrying the user.
func (a *Service) Login(ctx context.Context, email, password string) (context.Context, *models.User, error) {
	u, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return ctx, nil, err
	}
	return ctxutil.WithUserID(ctx, u.ID), u, nil
}
