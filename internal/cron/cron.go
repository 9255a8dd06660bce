package cron

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/grupohub/grupohub-backend/internal/config"
	"github.com/grupohub/grupohub-backend/internal/repository"
)

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, userRepo repository.UserRepository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every hour - drop expired sessions
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Purging expired api tokens...")
		s.purgeExpiredTokens()
	})

	// Run every day at 3 AM - drop stale reset tokens
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Purging stale password reset tokens...")
		s.purgeStaleResetTokens()
	})

	// Run every day at 3 AM - drop report artifacts left behind by
	// aborted downloads
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Purging stale report files...")
		s.purgeStaleReports()
	})

	s.cron.Start()
	log.Println("[Cron] ✅ Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.userRepo.DeleteExpiredApiTokens(ctx)
	if err != nil {
		log.Printf("❌ [Cron] Failed to purge api tokens: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[Cron] Removed %d expired api tokens", n)
	}
}

func (s *Scheduler) purgeStaleResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.userRepo.DeleteStalePasswordResetTokens(ctx, 24*time.Hour)
	if err != nil {
		log.Printf("❌ [Cron] Failed to purge reset tokens: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[Cron] Removed %d stale reset tokens", n)
	}
}

func (s *Scheduler) purgeStaleReports() {
	entries, err := os.ReadDir(s.cfg.ReportPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("❌ [Cron] Failed to read report directory: %v", err)
		}
		return
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.ReportPath, entry.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Cron] Removed %d stale report files", removed)
	}
}
