// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AuthResult is the result of a successful login or registration.
type AuthResult struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", nil,
		map[string]string{"email": email, "password": password, "name": name}, &result)
	if err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var resp struct {
		Account Account `json:"account"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// ProgramList is a page of programs.
type ProgramList struct {
	Programs   []Program  `json:"programs"`
	Pagination Pagination `json:"pagination"`
}

func (c *Client) ListPrograms(ctx context.Context, opts ListOptions) (*ProgramList, error) {
	var resp ProgramList
	if err := c.do(ctx, http.MethodGet, "/programs", listQuery(opts), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProgram(ctx context.Context, id int64) (*Program, error) {
	var resp struct {
		Program Program `json:"program"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/programs/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Program, nil
}

func (c *Client) GetProgramBySlug(ctx context.Context, slug string) (*Program, error) {
	var resp struct {
		Program Program `json:"program"`
	}
	if err := c.do(ctx, http.MethodGet, "/programs/slug/"+url.PathEscape(slug), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Program, nil
}

// CreateProgramInput holds the fields for creating a program.
type CreateProgramInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug,omitempty"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Status      string   `json:"status,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

func (c *Client) CreateProgram(ctx context.Context, input CreateProgramInput) (*Program, error) {
	var resp struct {
		Program Program `json:"program"`
	}
	if err := c.do(ctx, http.MethodPost, "/programs", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Program, nil
}

// UpdateProgramInput holds a partial program update. Nil fields keep
// their stored values.
type UpdateProgramInput struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Summary     *string   `json:"summary,omitempty"`
	Description *string   `json:"description,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

func (c *Client) UpdateProgram(ctx context.Context, id int64, input UpdateProgramInput) (*Program, error) {
	var resp struct {
		Program Program `json:"program"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/programs/%d", id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Program, nil
}

func (c *Client) DeleteProgram(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/programs/%d", id), nil, nil, nil)
}

// TestimonialList is a page of testimonials.
type TestimonialList struct {
	Testimonials []Testimonial `json:"testimonials"`
	Pagination   Pagination    `json:"pagination"`
}

func (c *Client) ListTestimonials(ctx context.Context, opts ListOptions) (*TestimonialList, error) {
	var resp TestimonialList
	if err := c.do(ctx, http.MethodGet, "/testimonials", listQuery(opts), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTestimonial(ctx context.Context, id int64) (*Testimonial, error) {
	var resp struct {
		Testimonial Testimonial `json:"testimonial"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/testimonials/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Testimonial, nil
}

// CreateTestimonialInput holds the fields for creating a testimonial.
type CreateTestimonialInput struct {
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role,omitempty"`
	Quote      string `json:"quote"`
	Rating     *int64 `json:"rating,omitempty"`
	Status     string `json:"status,omitempty"`
	Featured   bool   `json:"featured,omitempty"`
}

func (c *Client) CreateTestimonial(ctx context.Context, input CreateTestimonialInput) (*Testimonial, error) {
	var resp struct {
		Testimonial Testimonial `json:"testimonial"`
	}
	if err := c.do(ctx, http.MethodPost, "/testimonials", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Testimonial, nil
}

// UpdateTestimonialInput holds a partial testimonial update.
type UpdateTestimonialInput struct {
	AuthorName *string `json:"author_name,omitempty"`
	AuthorRole *string `json:"author_role,omitempty"`
	Quote      *string `json:"quote,omitempty"`
	Rating     *int64  `json:"rating,omitempty"`
	Status     *string `json:"status,omitempty"`
	Featured   *bool   `json:"featured,omitempty"`
}

func (c *Client) UpdateTestimonial(ctx context.Context, id int64, input UpdateTestimonialInput) (*Testimonial, error) {
	var resp struct {
		Testimonial Testimonial `json:"testimonial"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/testimonials/%d", id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Testimonial, nil
}

func (c *Client) DeleteTestimonial(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/testimonials/%d", id), nil, nil, nil)
}

// EventList is a page of events.
type EventList struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}

func (c *Client) ListEvents(ctx context.Context, opts ListOptions) (*EventList, error) {
	var resp EventList
	if err := c.do(ctx, http.MethodGet, "/events", listQuery(opts), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) GetEventBySlug(ctx context.Context, slug string) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, "/events/slug/"+url.PathEscape(slug), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// CreateEventInput holds the fields for creating an event. Timestamps
// are RFC 3339 strings.
type CreateEventInput struct {
	Title                string `json:"title"`
	Slug                 string `json:"slug,omitempty"`
	Description          string `json:"description,omitempty"`
	Location             string `json:"location,omitempty"`
	StartsAt             string `json:"starts_at"`
	EndsAt               string `json:"ends_at,omitempty"`
	Capacity             *int64 `json:"capacity,omitempty"`
	RegistrationRequired bool   `json:"registration_required,omitempty"`
	Status               string `json:"status,omitempty"`
	Featured             bool   `json:"featured,omitempty"`
}

func (c *Client) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/events", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// UpdateEventInput holds a partial event update.
type UpdateEventInput struct {
	Title                *string `json:"title,omitempty"`
	Slug                 *string `json:"slug,omitempty"`
	Description          *string `json:"description,omitempty"`
	Location             *string `json:"location,omitempty"`
	StartsAt             *string `json:"starts_at,omitempty"`
	EndsAt               *string `json:"ends_at,omitempty"`
	Capacity             *int64  `json:"capacity,omitempty"`
	RegistrationRequired *bool   `json:"registration_required,omitempty"`
	Status               *string `json:"status,omitempty"`
	Featured             *bool   `json:"featured,omitempty"`
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, input UpdateEventInput) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil, nil)
}

// RegisterForEvent takes one registration slot on an upcoming event and
// returns the event with its updated registration count.
func (c *Client) RegisterForEvent(ctx context.Context, id int64) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/register", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// SubmitContactInput holds a public contact form submission.
type SubmitContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (c *Client) SubmitContactMessage(ctx context.Context, input SubmitContactInput) (*ContactMessage, error) {
	var resp struct {
		ContactMessage ContactMessage `json:"contact_message"`
	}
	if err := c.do(ctx, http.MethodPost, "/contact", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.ContactMessage, nil
}

// Subscribe adds or reactivates a newsletter subscription.
func (c *Client) Subscribe(ctx context.Context, email, name string) (*Subscription, error) {
	var resp struct {
		Subscription Subscription `json:"subscription"`
	}
	err := c.do(ctx, http.MethodPost, "/newsletter/subscribe", nil,
		map[string]string{"email": email, "name": name}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Subscription, nil
}

// Unsubscribe deactivates the subscription behind an unsubscribe token.
func (c *Client) Unsubscribe(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/newsletter/unsubscribe/"+url.PathEscape(token), nil, nil, nil)
}

// SubmitApplicationInput holds a public program application.
type SubmitApplicationInput struct {
	ProgramID     int64  `json:"program_id"`
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Message       string `json:"message,omitempty"`
}

func (c *Client) SubmitApplication(ctx context.Context, input SubmitApplicationInput) (*Application, error) {
	var resp struct {
		Application Application `json:"application"`
	}
	if err := c.do(ctx, http.MethodPost, "/applications", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Application, nil
}

// GetDashboardStats returns the admin dashboard counts.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var resp struct {
		Stats DashboardStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}
