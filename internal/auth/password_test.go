// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash has unexpected prefix: %s", hash)
	}

	// Salts are random, two hashes of the same password must differ
	hash2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == hash2 {
		t.Error("two hashes of the same password are identical")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "correct-horse", hash: hash, want: true},
		{name: "wrong password", password: "battery-staple", hash: hash, want: false},
		{name: "empty password", password: "", hash: hash, want: false},
		{name: "dummy hash never matches", password: "anything", hash: DummyHash, want: false},
		{name: "malformed hash", password: "x", hash: "not-a-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPassword(tt.password, tt.hash)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckPassword: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
