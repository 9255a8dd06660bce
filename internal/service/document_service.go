package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

// ============================================
// Document Service
// ============================================

// EditDocumentInput updates a document. A non-nil File replaces the
// stored content; Filename is its original name. Name changes the
// display name only.
type EditDocumentInput struct {
	Name     *string
	Filename string
	File     io.Reader
}

type DocumentService interface {
	Upload(ctx context.Context, groupID, filename string, r io.Reader) (*repository.Document, error)
	GetByID(ctx context.Context, id string) (*repository.Document, error)
	FindByGroup(ctx context.Context, groupID string) ([]*repository.Document, error)
	Edit(ctx context.Context, id string, in EditDocumentInput) (*repository.Document, error)
	OpenFile(ctx context.Context, id string) (*repository.Document, *os.File, error)
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	docRepo   repository.DocumentRepository
	groupRepo repository.GroupRepository
	store     *storage.Storage
}

func NewDocumentService(docRepo repository.DocumentRepository, groupRepo repository.GroupRepository, store *storage.Storage) DocumentService {
	return &documentService{docRepo: docRepo, groupRepo: groupRepo, store: store}
}

// Upload stores the file under the group's document directory keeping the
// original filename, then records it. A storage write that succeeds but a
// row insert that fails leaves no record, so the orphan file is removed.
func (s *documentService) Upload(ctx context.Context, groupID, filename string, r io.Reader) (*repository.Document, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}

	name := filepath.Base(filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrInvalidInput
	}
	relPath := filepath.Join("documents", groupID, name)

	size, err := s.store.Save(relPath, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &repository.Document{
		GroupID: groupID,
		Name:    name,
		Size:    size,
		Path:    relPath,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		_ = s.store.Delete(relPath)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id string) (*repository.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("Document")
	}
	return doc, nil
}

func (s *documentService) FindByGroup(ctx context.Context, groupID string) ([]*repository.Document, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}
	return s.docRepo.FindByGroup(ctx, groupID)
}

// Edit updates the display name and, when a replacement file is supplied,
// re-uploads the content. The new file is written before the row changes
// and the old file is unlinked last, so a failure along the way leaves
// the previous content reachable.
func (s *documentService) Edit(ctx context.Context, id string, in EditDocumentInput) (*repository.Document, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := doc.Path
	if in.File != nil {
		name := filepath.Base(in.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, ErrInvalidInput
		}
		relPath := filepath.Join("documents", doc.GroupID, name)

		size, err := s.store.Save(relPath, in.File)
		if err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
		doc.Name = name
		doc.Size = size
		doc.Path = relPath
	}
	if in.Name != nil {
		doc.Name = filepath.Base(*in.Name)
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		if doc.Path != oldPath {
			_ = s.store.Delete(doc.Path)
		}
		return nil, err
	}
	if doc.Path != oldPath {
		_ = s.store.Delete(oldPath)
	}
	return doc, nil
}

func (s *documentService) OpenFile(ctx context.Context, id string) (*repository.Document, *os.File, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.store.Open(doc.Path)
	if err != nil {
		return nil, nil, notFound("Document")
	}
	return doc, f, nil
}

// Delete removes the stored file before the row so a failed unlink never
// leaves a record pointing at nothing.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(doc.Path); err != nil {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	return s.docRepo.Delete(ctx, doc.ID)
}
