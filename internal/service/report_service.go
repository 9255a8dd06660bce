package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/report"
	"github.com/grupohub/grupohub-backend/internal/repository"
	"github.com/grupohub/grupohub-backend/internal/storage"
)

// ============================================
// Report Service
// ============================================

// ReportFile describes a generated export ready to stream. The file lives
// under the report directory and is removed by the caller after download.
type ReportFile struct {
	Name        string
	Path        string
	ContentType string
}

type ReportService interface {
	GenerateGroupReport(ctx context.Context, groupID string, withFiles bool) (*ReportFile, error)
}

type reportService struct {
	cfg       *config.Config
	groupRepo repository.GroupRepository
	memRepo   repository.MemberRepository
	docRepo   repository.DocumentRepository
	userRepo  repository.UserRepository
	store     *storage.Storage
}

func NewReportService(
	cfg *config.Config,
	groupRepo repository.GroupRepository,
	memRepo repository.MemberRepository,
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	store *storage.Storage,
) ReportService {
	return &reportService{
		cfg:       cfg,
		groupRepo: groupRepo,
		memRepo:   memRepo,
		docRepo:   docRepo,
		userRepo:  userRepo,
		store:     store,
	}
}

// GenerateGroupReport renders the group summary PDF. With withFiles it
// bundles the PDF together with every stored group document into a single
// ZIP instead.
func (s *reportService) GenerateGroupReport(ctx context.Context, groupID string, withFiles bool) (*ReportFile, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, notFound("Group")
	}

	members, err := s.memRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	data := &report.GroupReport{
		GroupName: group.Name,
		CreatedAt: group.CreatedAt,
	}
	if group.Description != nil {
		data.Description = *group.Description
	}
	if group.TypeGroup != nil {
		data.TypeGroupName = group.TypeGroup.Name
		data.Kind = group.TypeGroup.Kind
	}
	if group.Representative != nil {
		data.Representative = fmt.Sprintf("%s <%s>", group.Representative.Name, group.Representative.Email)
	}
	if creator, err := s.userRepo.FindByID(ctx, group.CreatorUserID); err == nil && creator != nil {
		data.Manager = fmt.Sprintf("%s <%s>", creator.Name, creator.Email)
	}
	for _, m := range members {
		line := report.MemberLine{Name: m.Name, Email: m.Email}
		if m.Role != nil {
			line.Role = *m.Role
		}
		if m.EntryDate != nil {
			line.EntryDate = m.EntryDate.Format("2006-01-02")
		}
		if m.DepartureDate != nil {
			line.DepartureDate = m.DepartureDate.Format("2006-01-02")
		}
		data.Members = append(data.Members, line)
	}
	for _, d := range docs {
		data.Documents = append(data.Documents, report.DocumentLine{Name: d.Name, Size: d.Size})
	}

	if err := os.MkdirAll(s.cfg.ReportPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	pdfName := fmt.Sprintf("group-report-%s-%s.pdf", groupID, stamp)
	pdfPath := filepath.Join(s.cfg.ReportPath, pdfName)
	if err := report.Render(data, pdfPath); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	if !withFiles {
		return &ReportFile{Name: pdfName, Path: pdfPath, ContentType: "application/pdf"}, nil
	}

	zipName := fmt.Sprintf("group-report-%s-%s.zip", groupID, stamp)
	zipPath := filepath.Join(s.cfg.ReportPath, zipName)
	if err := s.bundle(zipPath, pdfPath, pdfName, docs); err != nil {
		os.Remove(pdfPath)
		os.Remove(zipPath)
		return nil, err
	}
	os.Remove(pdfPath)
	return &ReportFile{Name: zipName, Path: zipPath, ContentType: "application/zip"}, nil
}

// bundle writes the PDF plus the group's documents into a ZIP. Documents
// missing from storage are skipped rather than failing the export.
func (s *reportService) bundle(zipPath, pdfPath, pdfName string, docs []*repository.Document) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := addToZip(zw, pdfName, pdfPath); err != nil {
		zw.Close()
		return err
	}
	for _, d := range docs {
		full, err := s.store.FullPath(d.Path)
		if err != nil {
			continue
		}
		if !s.store.Exists(d.Path) {
			continue
		}
		if err := addToZip(zw, filepath.Join("documents", d.Name), full); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addToZip(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
