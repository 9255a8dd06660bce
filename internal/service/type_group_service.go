package service

import (
	"context"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

// ============================================
// TypeGroup Service
// ============================================

type TypeGroupService interface {
	Create(ctx context.Context, name, kind string) (*repository.TypeGroup, error)
	GetByID(ctx context.Context, id string) (*repository.TypeGroup, error)
	FindAll(ctx context.Context) ([]*repository.TypeGroup, error)
	Edit(ctx context.Context, id string, name, kind *string) (*repository.TypeGroup, error)
	Delete(ctx context.Context, id string) error
}

type typeGroupService struct {
	typeRepo repository.TypeGroupRepository
}

func NewTypeGroupService(typeRepo repository.TypeGroupRepository) TypeGroupService {
	return &typeGroupService{typeRepo: typeRepo}
}

func (s *typeGroupService) Create(ctx context.Context, name, kind string) (*repository.TypeGroup, error) {
	if !types.IsValidGroupKind(kind) {
		kind = types.GroupKindInternal
	}
	t := &repository.TypeGroup{Name: name, Kind: kind}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *typeGroupService) GetByID(ctx context.Context, id string) (*repository.TypeGroup, error) {
	t, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("TypeGroup")
	}
	return t, nil
}

func (s *typeGroupService) FindAll(ctx context.Context) ([]*repository.TypeGroup, error) {
	return s.typeRepo.FindAll(ctx)
}

func (s *typeGroupService) Edit(ctx context.Context, id string, name, kind *string) (*repository.TypeGroup, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		t.Name = *name
	}
	if kind != nil && types.IsValidGroupKind(*kind) {
		t.Kind = *kind
	}
	if err := s.typeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *typeGroupService) Delete(ctx context.Context, id string) error {
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
