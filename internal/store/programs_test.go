// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/testutil"
)

func createTestProgram(t *testing.T, q *store.Queries, slug, status string, featured bool) model.Program {
	t.Helper()
	now := time.Now()
	program, err := q.CreateProgram(context.Background(), store.CreateProgramParams{
		Title:     "Program " + slug,
		Slug:      slug,
		Summary:   "A test program",
		Features:  model.StringList{"weekly sessions", "free materials"},
		Status:    status,
		Featured:  featured,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	return program
}

func TestProgramFeaturesRoundTrip(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	created := createTestProgram(t, q, "mentorship", model.ProgramStatusActive, false)

	got, err := q.GetProgramByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetProgramByID: %v", err)
	}
	want := model.StringList{"weekly sessions", "free materials"}
	if !reflect.DeepEqual(got.Features, want) {
		t.Errorf("Features = %v, want %v", got.Features, want)
	}
}

func TestGetProgramBySlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	created := createTestProgram(t, q, "community-garden", model.ProgramStatusActive, false)

	got, err := q.GetProgramBySlug(ctx, "community-garden")
	if err != nil {
		t.Fatalf("GetProgramBySlug: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}

	if _, err := q.GetProgramBySlug(ctx, "no-such-slug"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestCreateProgramDuplicateSlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	createTestProgram(t, q, "taken", model.ProgramStatusActive, false)

	now := time.Now()
	_, err := q.CreateProgram(context.Background(), store.CreateProgramParams{
		Title:     "Other",
		Slug:      "taken",
		Summary:   "duplicate slug",
		Status:    model.ProgramStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		t.Fatal("expected unique constraint error for duplicate slug")
	}
}

// List and Count must agree because they share the same filter predicate.
func TestListAndCountProgramsShareFilter(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	createTestProgram(t, q, "active-1", model.ProgramStatusActive, true)
	createTestProgram(t, q, "active-2", model.ProgramStatusActive, false)
	createTestProgram(t, q, "draft-1", model.ProgramStatusDraft, false)

	filters := []store.ProgramFilter{
		{},
		{Status: model.ProgramStatusActive},
		{Status: model.ProgramStatusDraft},
		{Featured: sql.NullBool{Bool: true, Valid: true}},
		{Status: model.ProgramStatusActive, Featured: sql.NullBool{Bool: false, Valid: true}},
	}

	for i, filter := range filters {
		t.Run(fmt.Sprintf("filter_%d", i), func(t *testing.T) {
			programs, err := q.ListPrograms(ctx, store.ListProgramsParams{Filter: filter, Limit: 100})
			if err != nil {
				t.Fatalf("ListPrograms: %v", err)
			}
			count, err := q.CountPrograms(ctx, filter)
			if err != nil {
				t.Fatalf("CountPrograms: %v", err)
			}
			if int64(len(programs)) != count {
				t.Errorf("list returned %d rows, count says %d", len(programs), count)
			}
		})
	}
}

func TestListProgramsFeaturedFirst(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	createTestProgram(t, q, "plain-a", model.ProgramStatusActive, false)
	createTestProgram(t, q, "starred", model.ProgramStatusActive, true)
	createTestProgram(t, q, "plain-b", model.ProgramStatusActive, false)

	programs, err := q.ListPrograms(context.Background(), store.ListProgramsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListPrograms: %v", err)
	}
	if len(programs) != 3 {
		t.Fatalf("len = %d, want 3", len(programs))
	}
	if !programs[0].Featured {
		t.Errorf("first program is not featured: %s", programs[0].Slug)
	}
}

func TestUpdateProgramPartial(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	program := createTestProgram(t, q, "renovate", model.ProgramStatusDraft, false)

	status := model.ProgramStatusActive
	featured := true
	updated, err := q.UpdateProgram(context.Background(), store.UpdateProgramParams{
		ID:       program.ID,
		Status:   &status,
		Featured: &featured,
	})
	if err != nil {
		t.Fatalf("UpdateProgram: %v", err)
	}
	if updated.Status != model.ProgramStatusActive {
		t.Errorf("Status = %q", updated.Status)
	}
	if !updated.Featured {
		t.Error("Featured not set")
	}
	if updated.Title != program.Title {
		t.Errorf("Title changed to %q", updated.Title)
	}

	_, err = q.UpdateProgram(context.Background(), store.UpdateProgramParams{ID: program.ID})
	if !errors.Is(err, store.ErrNoFields) {
		t.Errorf("err = %v, want ErrNoFields", err)
	}
}

func TestDeleteProgram(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	program := createTestProgram(t, q, "short-lived", model.ProgramStatusDraft, false)

	if err := q.DeleteProgram(ctx, program.ID); err != nil {
		t.Fatalf("DeleteProgram: %v", err)
	}
	if err := q.DeleteProgram(ctx, program.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second delete err = %v, want sql.ErrNoRows", err)
	}
}
