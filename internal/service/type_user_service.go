package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// TypeUser Service
// ============================================

type TypeUserService interface {
	Create(ctx context.Context, name string) (*repository.TypeUser, error)
	GetByID(ctx context.Context, id string) (*repository.TypeUser, error)
	FindAll(ctx context.Context) ([]*repository.TypeUser, error)
	Edit(ctx context.Context, id, name string) (*repository.TypeUser, error)
	Delete(ctx context.Context, id string) error
}

type typeUserService struct {
	typeRepo repository.TypeUserRepository
}

func NewTypeUserService(typeRepo repository.TypeUserRepository) TypeUserService {
	return &typeUserService{typeRepo: typeRepo}
}

func (s *typeUserService) Create(ctx context.Context, name string) (*repository.TypeUser, error) {
	t := &repository.TypeUser{Name: name}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *typeUserService) GetByID(ctx context.Context, id string) (*repository.TypeUser, error) {
	t, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("TypeUser")
	}
	return t, nil
}

func (s *typeUserService) FindAll(ctx context.Context) ([]*repository.TypeUser, error) {
	return s.typeRepo.FindAll(ctx)
}

func (s *typeUserService) Edit(ctx context.Context, id, name string) (*repository.TypeUser, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	if err := s.typeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *typeUserService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.typeRepo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}
	return nil
}

// isForeignKeyViolation reports whether err is Postgres error 23503,
// meaning some row still references the one being deleted.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
