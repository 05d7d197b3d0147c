// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/login", h.login)
		r.Get("/api/callback", h.callback)
		r.Get("/api/logout", h.logout)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/user", h.currentUser)

		r.Get("/api/categories", h.listCategories)
		r.Post("/api/categories", h.createCategory)
		r.Patch("/api/categories/{id}", h.updateCategory)
		r.Delete("/api/categories/{id}", h.deleteCategory)

		r.Get("/api/items", h.listItems)
		r.Post("/api/items", h.createItem)
		r.Get("/api/items/recent", h.recentItems)
		r.Get("/api/items/stats", h.itemStats)
		r.Get("/api/items/expiring", h.expiringItems)
		r.Get("/api/items/{id}", h.getItem)
		r.Patch("/api/items/{id}", h.updateItem)
		r.Delete("/api/items/{id}", h.deleteItem)
		r.Get("/api/items/{id}/qrcode", h.itemQRCode)
		r.Get("/api/items/{id}/qrcode/payload", h.itemQRPayload)

		r.Post("/api/capture/voice", h.captureVoice)
		r.Get("/api/capture/barcode/{code}", h.captureBarcode)
		r.Post("/api/capture/photo", h.capturePhoto)
		r.Post("/api/capture/qr/decode", h.captureQRDecode)
	})

	// uploaded photos are served as plain static files
	if h.files.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.files.UploadsDir)))
		router.Handle("/uploads/*", fileServer)
	}

	return router
}
