// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/testutil"
)

func createTestMessage(t *testing.T, q *store.Queries, email string) model.ContactMessage {
	t.Helper()
	now := time.Now()
	message, err := q.CreateContactMessage(context.Background(), store.CreateContactMessageParams{
		Name:      "Visitor",
		Email:     email,
		Subject:   "Volunteering",
		Body:      "How can I help?",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateContactMessage: %v", err)
	}
	return message
}

func TestContactMessageLifecycle(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	message := createTestMessage(t, q, "visitor@x.org")
	if message.Status != model.ContactStatusUnread {
		t.Errorf("Status = %q, want unread", message.Status)
	}

	// unread -> read -> replied, each step an explicit admin action
	for _, status := range []string{model.ContactStatusRead, model.ContactStatusReplied} {
		updated, err := q.UpdateContactMessageStatus(ctx, message.ID, status)
		if err != nil {
			t.Fatalf("UpdateContactMessageStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Status = %q, want %q", updated.Status, status)
		}
	}

	if err := q.DeleteContactMessage(ctx, message.ID); err != nil {
		t.Fatalf("DeleteContactMessage: %v", err)
	}
	if _, err := q.GetContactMessageByID(ctx, message.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestCountContactMessagesByStatus(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	createTestMessage(t, q, "a@x.org")
	b := createTestMessage(t, q, "b@x.org")
	if _, err := q.UpdateContactMessageStatus(ctx, b.ID, model.ContactStatusRead); err != nil {
		t.Fatalf("UpdateContactMessageStatus: %v", err)
	}

	unread, err := q.CountContactMessages(ctx, model.ContactStatusUnread)
	if err != nil {
		t.Fatalf("CountContactMessages: %v", err)
	}
	if unread != 1 {
		t.Errorf("unread = %d, want 1", unread)
	}

	all, err := q.CountContactMessages(ctx, "")
	if err != nil {
		t.Fatalf("CountContactMessages: %v", err)
	}
	if all != 2 {
		t.Errorf("all = %d, want 2", all)
	}
}
