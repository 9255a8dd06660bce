package service

import (
	"context"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

// ============================================
// Resources and Actions
// ============================================

type Resource string

const (
	ResourceGroup     Resource = "group"
	ResourceActivity  Resource = "activity"
	ResourceDocument  Resource = "document"
	ResourceMeeting   Resource = "meeting"
	ResourceNote      Resource = "note"
	ResourceMember    Resource = "member"
	ResourceTypeUser  Resource = "type_user"
	ResourceTypeGroup Resource = "type_group"
	ResourceUser      Resource = "user"
	ResourceReport    Resource = "report"
)

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// PermissionService decides permit/deny for (caller, resource, action,
// target). targetID is the owning group id for group-scoped resources, the
// group id for ResourceGroup, and the target user id for ResourceUser.
// A denied check returns ErrForbidden.
type PermissionService interface {
	Can(ctx context.Context, userID string, res Resource, action Action, targetID string) error
	IsAdmin(ctx context.Context, userID string) (bool, error)
	IsManager(ctx context.Context, userID string) (bool, error)
	IsRepresentative(ctx context.Context, userID string) (bool, error)
}

type permissionService struct {
	userRepo  repository.UserRepository
	groupRepo repository.GroupRepository
}

func NewPermissionService(userRepo repository.UserRepository, groupRepo repository.GroupRepository) PermissionService {
	return &permissionService{userRepo: userRepo, groupRepo: groupRepo}
}

func (s *permissionService) role(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.TypeUserName, nil
}

func (s *permissionService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.role(ctx, userID)
	return role == types.RoleAdmin, err
}

func (s *permissionService) IsManager(ctx context.Context, userID string) (bool, error) {
	role, err := s.role(ctx, userID)
	return role == types.RoleManager, err
}

func (s *permissionService) IsRepresentative(ctx context.Context, userID string) (bool, error) {
	role, err := s.role(ctx, userID)
	return role == types.RoleRepresentative, err
}

// isGroupRepresentative tests membership in the group's representative set.
// Linear scan; groups have few representatives.
func (s *permissionService) isGroupRepresentative(ctx context.Context, userID, groupID string) (bool, error) {
	ids, err := s.groupRepo.FindRepresentativeUserIDs(ctx, groupID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *permissionService) Can(ctx context.Context, userID string, res Resource, action Action, targetID string) error {
	role, err := s.role(ctx, userID)
	if err != nil {
		return err
	}

	permitted := false

	switch res {
	case ResourceGroup:
		switch action {
		case ActionView:
			permitted = true
		case ActionCreate:
			permitted = role == types.RoleManager
		case ActionUpdate, ActionDelete:
			group, err := s.groupRepo.FindByID(ctx, targetID)
			if err != nil {
				return err
			}
			if group == nil {
				return notFound("Group")
			}
			permitted = group.CreatorUserID == userID
		}

	case ResourceActivity, ResourceDocument, ResourceMeeting, ResourceNote, ResourceReport:
		switch action {
		case ActionView:
			permitted = true
		default:
			// targetID is the owning group id; a missing group is a 404,
			// not a denial.
			group, err := s.groupRepo.FindByID(ctx, targetID)
			if err != nil {
				return err
			}
			if group == nil {
				return notFound("Group")
			}
			permitted, err = s.isGroupRepresentative(ctx, userID, targetID)
			if err != nil {
				return err
			}
		}

	case ResourceMember:
		// Global role check, not scoped to the group.
		switch action {
		case ActionView:
			permitted = true
		default:
			permitted = role == types.RoleRepresentative
		}

	case ResourceTypeUser:
		permitted = role == types.RoleAdmin

	case ResourceTypeGroup:
		permitted = role == types.RoleRepresentative

	case ResourceUser:
		switch action {
		case ActionView:
			permitted = role == types.RoleAdmin || role == types.RoleManager || role == types.RoleRepresentative
		case ActionUpdate, ActionDelete, ActionRestore:
			permitted = userID == targetID || role == types.RoleAdmin
		}
	}

	if !permitted {
		return ErrForbidden
	}
	return nil
}
