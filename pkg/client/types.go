// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import "time"

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListOptions are the query parameters shared by list calls.
type ListOptions struct {
	Page     int
	Limit    int
	Status   string
	Featured *bool
}

// Account is an authenticated identity.
type Account struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Program is an outreach program.
type Program struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	Features        []string  `json:"features"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Testimonial is a participant quote.
type Testimonial struct {
	ID         int64     `json:"id"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role,omitempty"`
	Quote      string    `json:"quote"`
	Rating     *int64    `json:"rating,omitempty"`
	Status     string    `json:"status"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Event is a community event with optional capacity-limited registration.
type Event struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Slug                 string     `json:"slug"`
	Description          string     `json:"description"`
	DescriptionHTML      string     `json:"description_html,omitempty"`
	Location             string     `json:"location,omitempty"`
	StartsAt             time.Time  `json:"starts_at"`
	EndsAt               *time.Time `json:"ends_at,omitempty"`
	Capacity             *int64     `json:"capacity"`
	Registered           int64      `json:"registered"`
	RegistrationRequired bool       `json:"registration_required"`
	Status               string     `json:"status"`
	Featured             bool       `json:"featured"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ContactMessage is a message from the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription is a newsletter subscription.
type Subscription struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Application is a program application.
type Application struct {
	ID            int64     `json:"id"`
	ProgramID     *int64    `json:"program_id"`
	ApplicantName string    `json:"applicant_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DashboardStats are the admin dashboard aggregate counts.
type DashboardStats struct {
	Accounts            int64 `json:"accounts"`
	Programs            int64 `json:"programs"`
	ActivePrograms      int64 `json:"active_programs"`
	Testimonials        int64 `json:"testimonials"`
	Events              int64 `json:"events"`
	UpcomingEvents      int64 `json:"upcoming_events"`
	ContactMessages     int64 `json:"contact_messages"`
	UnreadMessages      int64 `json:"unread_messages"`
	ActiveSubscribers   int64 `json:"active_subscribers"`
	Applications        int64 `json:"applications"`
	PendingApplications int64 `json:"pending_applications"`
}
