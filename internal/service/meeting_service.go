package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

// ============================================
// Meeting Service
// ============================================

type CreateMeetingInput struct {
	Title    string
	Date     *time.Time
	Filename string
	File     io.Reader
}

// EditMeetingInput updates a meeting. A non-nil File replaces the stored
// minutes attachment; Filename is its original name.
type EditMeetingInput struct {
	Title    *string
	Date     *time.Time
	Filename string
	File     io.Reader
}

type MeetingService interface {
	Create(ctx context.Context, groupID string, in CreateMeetingInput) (*repository.Meeting, error)
	GetByID(ctx context.Context, id string) (*repository.Meeting, error)
	FindByGroup(ctx context.Context, groupID string) ([]*repository.Meeting, error)
	Edit(ctx context.Context, id string, in EditMeetingInput) (*repository.Meeting, error)
	OpenFile(ctx context.Context, id string) (*repository.Meeting, *os.File, error)
	Delete(ctx context.Context, id string) error
}

type meetingService struct {
	meetRepo  repository.MeetingRepository
	groupRepo repository.GroupRepository
	store     *storage.Storage
}

func NewMeetingService(meetRepo repository.MeetingRepository, groupRepo repository.GroupRepository, store *storage.Storage) MeetingService {
	return &meetingService{meetRepo: meetRepo, groupRepo: groupRepo, store: store}
}

// Create records a meeting with its minutes attachment. The stored file
// gets a generated name so repeated uploads of "minutes.pdf" never
// collide; the original name is kept for display and downloads.
func (s *meetingService) Create(ctx context.Context, groupID string, in CreateMeetingInput) (*repository.Meeting, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	if in.File == nil {
		return nil, ErrInvalidInput
	}

	original := filepath.Base(in.Filename)
	stored := uuid.NewString() + filepath.Ext(original)
	relPath := filepath.Join("meetings", groupID, stored)

	size, err := s.store.Save(relPath, in.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store meeting file: %w", err)
	}

	meeting := &repository.Meeting{
		GroupID: groupID,
		Title:   in.Title,
		Name:    original,
		Size:    size,
		Path:    relPath,
		Date:    in.Date,
	}
	if err := s.meetRepo.Create(ctx, meeting); err != nil {
		_ = s.store.Delete(relPath)
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) GetByID(ctx context.Context, id string) (*repository.Meeting, error) {
	meeting, err := s.meetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, notFound("Meeting")
	}
	return meeting, nil
}

func (s *meetingService) FindByGroup(ctx context.Context, groupID string) ([]*repository.Meeting, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return s.meetRepo.FindByGroup(ctx, groupID)
}

// Edit updates title and date and, when a replacement file is supplied,
// re-uploads the attachment under a fresh generated name. The old file is
// unlinked only after the row points at the new one.
func (s *meetingService) Edit(ctx context.Context, id string, in EditMeetingInput) (*repository.Meeting, error) {
	meeting, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		meeting.Title = *in.Title
	}
	if in.Date != nil {
		meeting.Date = in.Date
	}

	oldPath := meeting.Path
	if in.File != nil {
		original := filepath.Base(in.Filename)
		stored := uuid.NewString() + filepath.Ext(original)
		relPath := filepath.Join("meetings", meeting.GroupID, stored)

		size, err := s.store.Save(relPath, in.File)
		if err != nil {
			return nil, fmt.Errorf("failed to store meeting file: %w", err)
		}
		meeting.Name = original
		meeting.Size = size
		meeting.Path = relPath
	}

	if err := s.meetRepo.Update(ctx, meeting); err != nil {
		if meeting.Path != oldPath {
			_ = s.store.Delete(meeting.Path)
		}
		return nil, err
	}
	if meeting.Path != oldPath {
		_ = s.store.Delete(oldPath)
	}
	return meeting, nil
}

func (s *meetingService) OpenFile(ctx context.Context, id string) (*repository.Meeting, *os.File, error) {
	meeting, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.store.Open(meeting.Path)
	if err != nil {
		return nil, nil, notFound("Meeting")
	}
	return meeting, f, nil
}

func (s *meetingService) Delete(ctx context.Context, id string) error {
	meeting, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(meeting.Path); err != nil {
		return fmt.Errorf("failed to delete meeting file: %w", err)
	}
	return s.meetRepo.Delete(ctx, meeting.ID)
}
