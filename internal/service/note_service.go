package service

import (
	"context"

	"github.com/grupohub/grupohub-backend/internal/repository"
)

// ============================================
// Note Service
// ============================================

type NoteService interface {
	Create(ctx context.Context, groupID, title string, content *string) (*repository.Note, error)
	GetByID(ctx context.Context, id string) (*repository.Note, error)
	FindByGroup(ctx context.Context, groupID string) ([]*repository.Note, error)
	Edit(ctx context.Context, id string, title *string, content *string) (*repository.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	noteRepo  repository.NoteRepository
	groupRepo repository.GroupRepository
}

func NewNoteService(noteRepo repository.NoteRepository, groupRepo repository.GroupRepository) NoteService {
	return &noteService{noteRepo: noteRepo, groupRepo: groupRepo}
}

func (s *noteService) Create(ctx context.Context, groupID, title string, content *string) (*repository.Note, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}

	note := &repository.Note{GroupID: groupID, Title: title, Content: content}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) GetByID(ctx context.Context, id string) (*repository.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("Note")
	}
	return note, nil
}

func (s *noteService) FindByGroup(ctx context.Context, groupID string) ([]*repository.Note, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return s.noteRepo.FindByGroup(ctx, groupID)
}

func (s *noteService) Edit(ctx context.Context, id string, title *string, content *string) (*repository.Note, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = content
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}
