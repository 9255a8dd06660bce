package service

import (
	"context"
	"fmt"
	"log"

	pgx "github.com/jackc/pgx/v5"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/email"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/types"
)

// ============================================
// Group Service
// ============================================

// CreateGroupInput carries the group creation payload.
type CreateGroupInput struct {
	Name                string
	Description         *string
	TypeGroupName       string
	TypeGroupKind       string
	RepresentativeName  string
	RepresentativeEmail string
}

// EditGroupInput carries the partial update payload. Nil fields are left
// untouched.
type EditGroupInput struct {
	Name                *string
	Description         *string
	TypeGroupName       *string
	TypeGroupKind       *string
	RepresentativeName  *string
	RepresentativeEmail *string
}

type GroupService interface {
	Create(ctx context.Context, creatorID string, in CreateGroupInput) (*repository.Group, error)
	GetByID(ctx context.Context, id string) (*repository.Group, error)
	FindMany(ctx context.Context, filters map[string]string) ([]*repository.Group, error)
	Edit(ctx context.Context, id string, in EditGroupInput) (*repository.Group, error)
	Delete(ctx context.Context, id string) error
}

type groupService struct {
	cfg       *config.Config
	tx        repository.TxManager
	groupRepo repository.GroupRepository
	typeRepo  repository.TypeGroupRepository
	repRepo   repository.RepresentativeRepository
	memRepo   repository.MemberRepository
	userRepo  repository.UserRepository
	emailSvc  *email.Service
}

func NewGroupService(
	cfg *config.Config,
	tx repository.TxManager,
	groupRepo repository.GroupRepository,
	typeRepo repository.TypeGroupRepository,
	repRepo repository.RepresentativeRepository,
	memRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	emailSvc *email.Service,
) GroupService {
	return &groupService{
		cfg:       cfg,
		tx:        tx,
		groupRepo: groupRepo,
		typeRepo:  typeRepo,
		repRepo:   repRepo,
		memRepo:   memRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

// pendingMail captures an email decided inside the transaction but sent
// only after commit.
type pendingMail struct {
	to       string
	existing bool
	name     string
}

// Create provisions the group with its owned type-group and representative
// contact in one transaction. The representative email decides the
// notification: an existing user is linked and told about the group, an
// unknown email gets a signup invitation.
func (s *groupService) Create(ctx context.Context, creatorID string, in CreateGroupInput) (*repository.Group, error) {
	kind := in.TypeGroupKind
	if !types.IsValidGroupKind(kind) {
		kind = types.GroupKindInternal
	}

	repUser, err := s.userRepo.FindByEmail(ctx, in.RepresentativeEmail)
	if err != nil {
		return nil, err
	}

	group := &repository.Group{
		Name:          in.Name,
		Description:   in.Description,
		CreatorUserID: creatorID,
	}
	var mail pendingMail

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		typeGroup := &repository.TypeGroup{Name: in.TypeGroupName, Kind: kind}
		if err := s.typeRepo.CreateTx(ctx, tx, typeGroup); err != nil {
			return fmt.Errorf("failed to create type group: %w", err)
		}

		rep := &repository.Representative{
			Name:  in.RepresentativeName,
			Email: in.RepresentativeEmail,
		}
		if repUser != nil {
			rep.UserID = &repUser.ID
			if rep.Name == "" {
				rep.Name = repUser.Name
			}
			mail = pendingMail{to: repUser.Email, existing: true, name: repUser.Name}
		} else {
			mail = pendingMail{to: in.RepresentativeEmail, existing: false}
		}
		if err := s.repRepo.CreateTx(ctx, tx, rep); err != nil {
			return fmt.Errorf("failed to create representative: %w", err)
		}

		group.TypeGroupID = typeGroup.ID
		group.RepresentativeID = rep.ID
		if err := s.groupRepo.CreateTx(ctx, tx, group); err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		if repUser != nil {
			if err := s.groupRepo.AddRepresentativeTx(ctx, tx, group.ID, repUser.ID); err != nil {
				return fmt.Errorf("failed to grant representative: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendRepresentativeMail(group.Name, mail)
	return s.GetByID(ctx, group.ID)
}

func (s *groupService) GetByID(ctx context.Context, id string) (*repository.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return group, nil
}

// FindMany is a pass-through filtered listing. An empty filter set returns
// the full listing.
func (s *groupService) FindMany(ctx context.Context, filters map[string]string) ([]*repository.Group, error) {
	return s.groupRepo.FindByFilters(ctx, filters)
}

func (s *groupService) Edit(ctx context.Context, id string, in EditGroupInput) (*repository.Group, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var mail *pendingMail
	var repUser *repository.User
	if in.RepresentativeEmail != nil {
		repUser, err = s.userRepo.FindByEmail(ctx, *in.RepresentativeEmail)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if in.RepresentativeEmail != nil {
			rep := group.Representative
			// The outgoing representative's grant goes with them, or they
			// would keep write access to the group forever.
			if rep.UserID != nil && (repUser == nil || *rep.UserID != repUser.ID) {
				if err := s.groupRepo.RemoveRepresentativeTx(ctx, tx, group.ID, *rep.UserID); err != nil {
					return fmt.Errorf("failed to revoke representative: %w", err)
				}
			}
			rep.Email = *in.RepresentativeEmail
			// Preserve the display name unless a new one is supplied.
			if in.RepresentativeName != nil {
				rep.Name = *in.RepresentativeName
			}
			if repUser != nil {
				rep.UserID = &repUser.ID
				if rep.Name == "" {
					rep.Name = repUser.Name
				}
				mail = &pendingMail{to: repUser.Email, existing: true, name: repUser.Name}
			} else {
				rep.UserID = nil
				mail = &pendingMail{to: rep.Email, existing: false}
			}
			if err := s.repRepo.UpdateTx(ctx, tx, rep); err != nil {
				return fmt.Errorf("failed to update representative: %w", err)
			}
			if repUser != nil {
				if err := s.groupRepo.AddRepresentativeTx(ctx, tx, group.ID, repUser.ID); err != nil {
					return fmt.Errorf("failed to grant representative: %w", err)
				}
			}
		} else if in.RepresentativeName != nil {
			rep := group.Representative
			rep.Name = *in.RepresentativeName
			if err := s.repRepo.UpdateTx(ctx, tx, rep); err != nil {
				return fmt.Errorf("failed to update representative: %w", err)
			}
		}

		if in.Name != nil {
			group.Name = *in.Name
		}
		if in.Description != nil {
			group.Description = in.Description
		}
		if err := s.groupRepo.UpdateTx(ctx, tx, group); err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}

		if in.TypeGroupName != nil || in.TypeGroupKind != nil {
			typeGroup := group.TypeGroup
			if in.TypeGroupName != nil {
				typeGroup.Name = *in.TypeGroupName
			}
			if in.TypeGroupKind != nil && types.IsValidGroupKind(*in.TypeGroupKind) {
				typeGroup.Kind = *in.TypeGroupKind
			}
			if err := s.typeRepo.UpdateTx(ctx, tx, typeGroup); err != nil {
				return fmt.Errorf("failed to update type group: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mail != nil {
		s.sendRepresentativeMail(group.Name, *mail)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the group and everything it exclusively owns. Members go
// first so no join rows dangle, then the group row, then the owned
// type-group and representative records it referenced.
func (s *groupService) Delete(ctx context.Context, id string) error {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.memRepo.DeleteByGroupTx(ctx, tx, group.ID); err != nil {
			return fmt.Errorf("failed to delete members: %w", err)
		}
		if err := s.groupRepo.DeleteTx(ctx, tx, group.ID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		if err := s.typeRepo.DeleteTx(ctx, tx, group.TypeGroupID); err != nil {
			return fmt.Errorf("failed to delete type group: %w", err)
		}
		if err := s.repRepo.DeleteTx(ctx, tx, group.RepresentativeID); err != nil {
			return fmt.Errorf("failed to delete representative: %w", err)
		}
		return nil
	})
}

func (s *groupService) sendRepresentativeMail(groupName string, mail pendingMail) {
	if s.emailSvc == nil || mail.to == "" {
		return
	}
	var err error
	if mail.existing {
		err = s.emailSvc.SendGroupEntry(mail.to, email.GroupEntryData{
			Name:      mail.name,
			GroupName: groupName,
			GroupURL:  fmt.Sprintf("%s/groups", s.cfg.FrontendURL),
		})
	} else {
		err = s.emailSvc.SendRegisterInvite(mail.to, email.RegisterInviteData{
			GroupName:   groupName,
			RegisterURL: fmt.Sprintf("%s/register?email=%s", s.cfg.FrontendURL, mail.to),
		})
	}
	if err != nil {
		log.Printf("[Group] Failed to send representative email to %s: %v", mail.to, err)
	}
}
