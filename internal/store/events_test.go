// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/testutil"
)

func createTestEvent(t *testing.T, q *store.Queries, slug, status string, capacity int64, registered int64) model.Event {
	t.Helper()
	now := time.Now()
	var capVal sql.NullInt64
	if capacity >= 0 {
		capVal = sql.NullInt64{Int64: capacity, Valid: true}
	}
	event, err := q.CreateEvent(context.Background(), store.CreateEventParams{
		Title:     "Event " + slug,
		Slug:      slug,
		StartsAt:  now.Add(48 * time.Hour),
		Capacity:  capVal,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	// Seed an existing registration count when requested
	if registered > 0 {
		for i := int64(0); i < registered; i++ {
			if _, err := q.RegisterForEvent(context.Background(), event.ID); err != nil {
				t.Fatalf("seeding registrations: %v", err)
			}
		}
		event, err = q.GetEventByID(context.Background(), event.ID)
		if err != nil {
			t.Fatalf("GetEventByID: %v", err)
		}
	}
	return event
}

func TestRegisterForEvent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	t.Run("increments registered", func(t *testing.T) {
		event := createTestEvent(t, q, "open-day", model.EventStatusUpcoming, 10, 0)

		ok, err := q.RegisterForEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("RegisterForEvent: %v", err)
		}
		if !ok {
			t.Fatal("registration rejected for open event")
		}

		got, err := q.GetEventByID(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEventByID: %v", err)
		}
		if got.Registered != 1 {
			t.Errorf("Registered = %d, want 1", got.Registered)
		}
	})

	t.Run("rejects full event", func(t *testing.T) {
		event := createTestEvent(t, q, "full-house", model.EventStatusUpcoming, 2, 2)

		ok, err := q.RegisterForEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("RegisterForEvent: %v", err)
		}
		if ok {
			t.Error("registration accepted on a full event")
		}
	})

	t.Run("rejects non-upcoming event", func(t *testing.T) {
		event := createTestEvent(t, q, "wrapped-up", model.EventStatusCompleted, 10, 0)

		ok, err := q.RegisterForEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("RegisterForEvent: %v", err)
		}
		if ok {
			t.Error("registration accepted on a completed event")
		}
	})

	t.Run("unlimited capacity", func(t *testing.T) {
		event := createTestEvent(t, q, "no-limit", model.EventStatusUpcoming, -1, 0)

		for i := 0; i < 5; i++ {
			ok, err := q.RegisterForEvent(ctx, event.ID)
			if err != nil {
				t.Fatalf("RegisterForEvent: %v", err)
			}
			if !ok {
				t.Fatalf("registration %d rejected on unlimited event", i)
			}
		}
	})

	t.Run("absent event", func(t *testing.T) {
		ok, err := q.RegisterForEvent(ctx, 9999)
		if err != nil {
			t.Fatalf("RegisterForEvent: %v", err)
		}
		if ok {
			t.Error("registration accepted on a missing event")
		}
	})
}

// With one open slot and many concurrent attempts, exactly one may win.
func TestRegisterForEventConcurrent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	event := createTestEvent(t, q, "last-seat", model.EventStatusUpcoming, 5, 4)

	const attempts = 8
	results := make([]bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := q.RegisterForEvent(ctx, event.ID)
			if err != nil {
				t.Errorf("RegisterForEvent: %v", err)
				return
			}
			results[i] = ok
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d registrations succeeded, want exactly 1", wins)
	}

	got, err := q.GetEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if got.Registered != 5 {
		t.Errorf("Registered = %d, want 5", got.Registered)
	}
}

func TestUpdateEventClearsEndTime(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	now := time.Now()
	event, err := q.CreateEvent(ctx, store.CreateEventParams{
		Title:     "Evening Talk",
		Slug:      "evening-talk",
		StartsAt:  now.Add(24 * time.Hour),
		EndsAt:    sql.NullTime{Time: now.Add(26 * time.Hour), Valid: true},
		Status:    model.EventStatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	cleared := sql.NullTime{}
	updated, err := q.UpdateEvent(ctx, store.UpdateEventParams{ID: event.ID, EndsAt: &cleared})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.EndsAt.Valid {
		t.Error("EndsAt still set after clearing")
	}
}
