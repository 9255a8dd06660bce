package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// User Service
// ============================================

// EditUserInput updates the mutable account fields. A nil password leaves
// the current hash in place.
type EditUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	FindAll(ctx context.Context) ([]*repository.User, error)
	Edit(ctx context.Context, id string, in EditUserInput) (*repository.User, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}

func (s *userService) FindAll(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) Edit(ctx context.Context, id string, in EditUserInput) (*repository.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		other, err := s.userRepo.FindByEmailAny(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, ErrEmailExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes the account. Tokens stay in place but the auth
// lookup only sees live users, so sessions die with the account.
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.DeleteApiTokenByUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.SoftDelete(ctx, id)
}

func (s *userService) Restore(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByIDAny(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("User")
	}
	return s.userRepo.Restore(ctx, id)
}
