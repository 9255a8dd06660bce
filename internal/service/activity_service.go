package service

import (
	"context"
	"time"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// Activity Service
// ============================================

type CreateActivityInput struct {
	Name        string
	Description *string
	Date        *time.Time
}

type EditActivityInput struct {
	Name        *string
	Description *string
	Date        *time.Time
}

type ActivityService interface {
	Create(ctx context.Context, groupID string, in CreateActivityInput) (*repository.Activity, error)
	GetByID(ctx context.Context, id string) (*repository.Activity, error)
	FindByGroup(ctx context.Context, groupID string) ([]*repository.Activity, error)
	Edit(ctx context.Context, id string, in EditActivityInput) (*repository.Activity, error)
	Delete(ctx context.Context, id string) error
}

type activityService struct {
	actRepo   repository.ActivityRepository
	groupRepo repository.GroupRepository
}

func NewActivityService(actRepo repository.ActivityRepository, groupRepo repository.GroupRepository) ActivityService {
	return &activityService{actRepo: actRepo, groupRepo: groupRepo}
}

func (s *activityService) Create(ctx context.Context, groupID string, in CreateActivityInput) (*repository.Activity, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}

	activity := &repository.Activity{
		GroupID:     groupID,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.actRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*repository.Activity, error) {
	activity, err := s.actRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, notFound("Activity")
	}
	return activity, nil
}

func (s *activityService) FindByGroup(ctx context.Context, groupID string) ([]*repository.Activity, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return s.actRepo.FindByGroup(ctx, groupID)
}

func (s *activityService) Edit(ctx context.Context, id string, in EditActivityInput) (*repository.Activity, error) {
	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		activity.Name = *in.Name
	}
	if in.Description != nil {
		activity.Description = in.Description
	}
	if in.Date != nil {
		activity.Date = in.Date
	}

	if err := s.actRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.actRepo.Delete(ctx, id)
}
