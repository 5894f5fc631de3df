// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/brightpath/brightpath-go/internal/middleware"
)

// Routes builds the /api/v1 route tree. The rate limiter guards the
// unauthenticated write endpoints; admin routes hang off RequireAdmin.
func (h *Handler) Routes(authn *middleware.Authenticator, publicLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware())
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.With(authn.RequireAuth).Get("/me", h.Me)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.With(authn.RequireAdmin).Get("/", h.ListAccounts)
		r.With(authn.RequireAuth).Get("/{id}", h.GetAccount)
		r.With(authn.RequireAuth).Put("/{id}", h.UpdateAccount)
		r.With(authn.RequireAuth).Put("/{id}/password", h.ChangePassword)
		r.With(authn.RequireAdmin).Delete("/{id}", h.DeleteAccount)
	})

	r.Route("/programs", func(r chi.Router) {
		r.With(authn.OptionalAuth).Get("/", h.ListPrograms)
		r.Get("/{id}", h.GetProgram)
		r.Get("/slug/{slug}", h.GetProgramBySlug)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Post("/", h.CreateProgram)
			r.Put("/{id}", h.UpdateProgram)
			r.Delete("/{id}", h.DeleteProgram)
		})
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.With(authn.OptionalAuth).Get("/", h.ListTestimonials)
		r.Get("/{id}", h.GetTestimonial)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Post("/", h.CreateTestimonial)
			r.Put("/{id}", h.UpdateTestimonial)
			r.Delete("/{id}", h.DeleteTestimonial)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Get("/slug/{slug}", h.GetEventBySlug)
		r.With(publicLimiter.Middleware()).Post("/{id}/register", h.RegisterForEvent)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Post("/", h.CreateEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
		})
	})

	r.Route("/contact", func(r chi.Router) {
		r.With(publicLimiter.Middleware()).Post("/", h.CreateContactMessage)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Get("/", h.ListContactMessages)
			r.Get("/{id}", h.GetContactMessage)
			r.Put("/{id}/status", h.UpdateContactMessageStatus)
			r.Delete("/{id}", h.DeleteContactMessage)
		})
	})

	r.Route("/newsletter", func(r chi.Router) {
		r.With(publicLimiter.Middleware()).Post("/subscribe", h.Subscribe)
		r.Post("/unsubscribe/{token}", h.Unsubscribe)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Get("/", h.ListSubscriptions)
			r.Delete("/{id}", h.DeleteSubscription)
		})
	})

	r.Route("/applications", func(r chi.Router) {
		r.With(publicLimiter.Middleware()).Post("/", h.CreateApplication)
		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAdmin)
			r.Get("/", h.ListApplications)
			r.Get("/{id}", h.GetApplication)
			r.Put("/{id}/status", h.UpdateApplicationStatus)
			r.Delete("/{id}", h.DeleteApplication)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(authn.RequireAdmin)
		r.Get("/stats", h.DashboardStats)
		r.Get("/activity", h.RecentActivity)
	})

	return r
}
