// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallyhq/tally/internal/utils"
)

// Sentinel errors for rejected photo uploads. Both map to 400.
var (
	ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")
	ErrUploadNotImage = errors.New("uploaded file is not an image")
)

// saveUpload stores the multipart file under field in the uploads directory
// and returns its static-served "/uploads/..." path. A missing field is not
// an error; the caller gets a nil path.
//
// The file is rejected when it exceeds the configured size limit or when its
// sniffed content type is not image/*. The stored name is a fresh uuid plus
// the original extension, so uploads never collide and the original name
// never reaches the filesystem.
func (h *Handler) saveUpload(r *http.Request, field string) (*string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes() {
		return nil, ErrUploadTooLarge
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return nil, ErrUploadNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(h.files.UploadsDir, 0o755); err != nil {
		return nil, err
	}

	name := utils.NewUUIDGenerator().Generate() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.files.UploadsDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, err
	}

	servedPath := "/uploads/" + name
	return &servedPath, nil
}
