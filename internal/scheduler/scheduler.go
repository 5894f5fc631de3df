// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler advances event lifecycle states in the background.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brightpath/brightpath-go/internal/cache"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/service"
	"github.com/brightpath/brightpath-go/internal/store"
)

// cachePrefixEvents mirrors the API layer's cache prefix for event reads.
const cachePrefixEvents = "events"

// Scheduler moves events through upcoming -> ongoing -> completed as
// their start and end times pass.
type Scheduler struct {
	queries *store.Queries
	cron    *cron.Cron
	cache   cache.Cache
	audit   *service.AuditService
	logger  *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, c cache.Cache, audit *service.AuditService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		cron:    cron.New(),
		cache:   c,
		audit:   audit,
		logger:  logger,
	}
}

// Start begins the scheduler with a transition check every minute.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.TransitionEvents(context.Background()); err != nil {
			s.logger.Error("failed to transition events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// TransitionEvents applies both lifecycle transitions once.
func (s *Scheduler) TransitionEvents(ctx context.Context) error {
	now := time.Now()

	started, err := s.queries.MarkEventsOngoing(ctx, now)
	if err != nil {
		return err
	}
	completed, err := s.queries.MarkEventsCompleted(ctx, now)
	if err != nil {
		return err
	}
	if len(started) == 0 && len(completed) == 0 {
		return nil
	}

	for _, e := range started {
		s.logTransition(ctx, e, model.EventStatusOngoing)
	}
	for _, e := range completed {
		s.logTransition(ctx, e, model.EventStatusCompleted)
	}

	if err := s.cache.DeleteByPrefix(ctx, cachePrefixEvents+":"); err != nil {
		s.logger.Warn("failed to invalidate event cache", "error", err)
	}
	return nil
}

func (s *Scheduler) logTransition(ctx context.Context, e model.Event, status string) {
	s.logger.Info("event transitioned", "event_id", e.ID, "slug", e.Slug, "status", status)
	_ = s.audit.LogInfo(ctx, model.AuditCategoryContent, "event moved to "+status, nil, "",
		map[string]any{"event_id": e.ID, "slug": e.Slug})
}
