package service

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v5"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// Member Service
// ============================================

// CreateMemberInput is one entry of a batch member creation.
type CreateMemberInput struct {
	Name      string
	Email     string
	Phone     *string
	Role      *string
	EntryDate *time.Time
}

// EditMemberInput updates the mutable member fields. Name and email are
// fixed after creation.
type EditMemberInput struct {
	Phone         *string
	Role          *string
	EntryDate     *time.Time
	DepartureDate *time.Time
}

type MemberService interface {
	CreateMany(ctx context.Context, groupID string, inputs []CreateMemberInput) ([]*repository.Member, error)
	GetByID(ctx context.Context, id string) (*repository.Member, error)
	FindByGroup(ctx context.Context, groupID string) ([]*repository.Member, error)
	Edit(ctx context.Context, id string, in EditMemberInput) (*repository.Member, error)
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	tx        repository.TxManager
	memRepo   repository.MemberRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewMemberService(
	tx repository.TxManager,
	memRepo repository.MemberRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) MemberService {
	return &memberService{
		tx:        tx,
		memRepo:   memRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateMany inserts the whole batch or nothing, then returns the group's
// full member list. A duplicate email inside the target group aborts the
// transaction and reports ErrMembersExist, so retrying the same payload
// after fixing the list is safe.
func (s *memberService) CreateMany(ctx context.Context, groupID string, inputs []CreateMemberInput) ([]*repository.Member, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidInput
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, in := range inputs {
			exists, err := s.memRepo.ExistsInGroupTx(ctx, tx, groupID, in.Email)
			if err != nil {
				return err
			}
			if exists {
				return ErrMembersExist
			}

			member := &repository.Member{
				Name:      in.Name,
				Email:     in.Email,
				Phone:     in.Phone,
				Role:      in.Role,
				EntryDate: in.EntryDate,
			}
			// A member who already registered keeps their account link
			// across groups.
			user, err := s.userRepo.FindByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if user != nil {
				member.UserID = &user.ID
			}

			if err := s.memRepo.CreateTx(ctx, tx, member); err != nil {
				return fmt.Errorf("failed to create member: %w", err)
			}
			if err := s.memRepo.AddToGroupTx(ctx, tx, member.ID, groupID); err != nil {
				return fmt.Errorf("failed to add member to group: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.memRepo.FindByGroup(ctx, groupID)
}

func (s *memberService) GetByID(ctx context.Context, id string) (*repository.Member, error) {
	member, err := s.memRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, notFound("Member")
	}
	return member, nil
}

func (s *memberService) FindByGroup(ctx context.Context, groupID string) ([]*repository.Member, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return s.memRepo.FindByGroup(ctx, groupID)
}

func (s *memberService) Edit(ctx context.Context, id string, in EditMemberInput) (*repository.Member, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Phone != nil {
		member.Phone = in.Phone
	}
	if in.Role != nil {
		member.Role = in.Role
	}
	if in.EntryDate != nil {
		member.EntryDate = in.EntryDate
	}
	if in.DepartureDate != nil {
		member.DepartureDate = in.DepartureDate
	}

	if err := s.memRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.memRepo.Delete(ctx, member.ID)
}
