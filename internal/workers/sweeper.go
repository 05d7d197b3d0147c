// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package workers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
)

// UploadReferences reports the set of "/uploads/..." paths the inventory
// still points at. Implemented by the item repository.
type UploadReferences interface {
	GetReferencedUploads(ctx context.Context) (map[string]struct{}, error)
}

// defaultSweepMinAge guards files of uploads whose items are still being
// created when the config leaves the minimum age unset.
const defaultSweepMinAge = time.Hour

// UploadsSweeper periodically removes uploaded photo files no item
// references anymore. Deleting an item (or replacing its photo) leaves the
// old file behind; the sweeper is what reclaims it.
type UploadsSweeper struct {
	uploadsDir string
	interval   time.Duration
	minAge     time.Duration

	references UploadReferences
	logger     *logger.Logger
}

// NewUploadsSweeper builds a sweeper over the uploads directory. It returns
// nil when the configured interval is zero; a nil sweeper is simply not run.
func NewUploadsSweeper(files config.Files, cfg config.Workers, references UploadReferences, log *logger.Logger) *UploadsSweeper {
	if cfg.SweepInterval <= 0 || files.UploadsDir == "" {
		return nil
	}

	minAge := cfg.SweepMinAge
	if minAge <= 0 {
		minAge = defaultSweepMinAge
	}

	return &UploadsSweeper{
		uploadsDir: files.UploadsDir,
		interval:   cfg.SweepInterval,
		minAge:     minAge,
		references: references,
		logger:     log,
	}
}

// Run sweeps on every interval tick until ctx is cancelled.
func (s *UploadsSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Dur("minAge", s.minAge).
		Str("dir", s.uploadsDir).
		Msg("uploads sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("uploads sweeper stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Err(err).Msg("uploads sweep failed")
			}
		}
	}
}

// Sweep removes every file in the uploads directory that is old enough and
// not referenced by any item. Files younger than the minimum age are kept:
// their item may still be in flight between upload and insert.
func (s *UploadsSweeper) Sweep(ctx context.Context) error {
	referenced, err := s.references.GetReferencedUploads(ctx)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-s.minAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced["/uploads/"+entry.Name()]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.uploadsDir, entry.Name())); err != nil {
			s.logger.Err(err).Str("file", entry.Name()).Msg("removing orphaned upload failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("orphaned uploads swept")
	}

	return nil
}
