package api

import (
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/render"
)

// Response views shadow the nullable store types with plain JSON shapes
// and attach server-rendered fields.

type accountView struct {
	model.Account
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func newAccountView(a model.Account) accountView {
	v := accountView{Account: a}
	if a.LastLoginAt.Valid {
		t := a.LastLoginAt.Time
		v.LastLoginAt = &t
	}
	return v
}

func newAccountViews(accounts []model.Account) []accountView {
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, newAccountView(a))
	}
	return views
}

type programView struct {
	model.Program
	DescriptionHTML string `json:"description_html,omitempty"`
}

func newProgramView(p model.Program) programView {
	v := programView{Program: p}
	if html, err := render.MarkdownToHTML(p.Description); err == nil {
		v.DescriptionHTML = html
	}
	return v
}

func newProgramViews(programs []model.Program) []programView {
	views := make([]programView, 0, len(programs))
	for _, p := range programs {
		views = append(views, newProgramView(p))
	}
	return views
}

type testimonialView struct {
	model.Testimonial
	Rating *int64 `json:"rating,omitempty"`
}

func newTestimonialView(t model.Testimonial) testimonialView {
	v := testimonialView{Testimonial: t}
	if t.Rating.Valid {
		r := t.Rating.Int64
		v.Rating = &r
	}
	return v
}

func newTestimonialViews(testimonials []model.Testimonial) []testimonialView {
	views := make([]testimonialView, 0, len(testimonials))
	for _, t := range testimonials {
		views = append(views, newTestimonialView(t))
	}
	return views
}

type eventView struct {
	model.Event
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	Capacity        *int64     `json:"capacity"`
	DescriptionHTML string     `json:"description_html,omitempty"`
}

func newEventView(e model.Event) eventView {
	v := eventView{Event: e}
	if e.EndsAt.Valid {
		t := e.EndsAt.Time
		v.EndsAt = &t
	}
	if e.Capacity.Valid {
		c := e.Capacity.Int64
		v.Capacity = &c
	}
	if html, err := render.MarkdownToHTML(e.Description); err == nil {
		v.DescriptionHTML = html
	}
	return v
}

func newEventViews(events []model.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e))
	}
	return views
}

type applicationView struct {
	model.Application
	ProgramID *int64 `json:"program_id"`
}

func newApplicationView(a model.Application) applicationView {
	v := applicationView{Application: a}
	if a.ProgramID.Valid {
		id := a.ProgramID.Int64
		v.ProgramID = &id
	}
	return v
}

func newApplicationViews(applications []model.Application) []applicationView {
	views := make([]applicationView, 0, len(applications))
	for _, a := range applications {
		views = append(views, newApplicationView(a))
	}
	return views
}
