// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the largest accepted payload (50MB), matching the upload
// service's own limit so oversized files fail fast without a round trip.
const MaxFileSize = 50 * 1024 * 1024

// allowedExtensions mirrors the upload service's allowlist.
var allowedExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".doc": true, ".txt": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".xlsx": true, ".xls": true, ".pptx": true, ".ppt": true,
}

// Error variables for upload validation.
var (
	// ErrUnsupportedType indicates the file extension is not accepted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the payload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds 50MB limit")
)

// Payload is one raw file handed in by the user. The bytes are opaque; no
// parsing happens on this side.
type Payload struct {
	Name     string
	MimeType string
	Data     []byte
}

// Descriptor is the upload service's record of a stored file.
type Descriptor struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Uploader submits a single file payload and returns its descriptor.
type Uploader interface {
	Upload(ctx context.Context, p Payload) (*Descriptor, error)
}

// =============================================================================
// HTTP UPLOADER
// =============================================================================

// HTTPUploader uploads files to the upload service as multipart form data.
type HTTPUploader struct {
	url        string
	httpClient *http.Client
}

// NewHTTPUploader creates an uploader targeting the given endpoint URL.
func NewHTTPUploader(url string) *HTTPUploader {
	return &HTTPUploader{
		url: strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Validate checks a payload against the service's constraints.
func Validate(p Payload) error {
	ext := strings.ToLower(filepath.Ext(p.Name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if int64(len(p.Data)) > MaxFileSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, p.Name)
	}
	return nil
}

// Upload submits one payload and decodes the returned descriptor.
func (u *HTTPUploader) Upload(ctx context.Context, p Payload) (*Descriptor, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", p.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(p.Data); err != nil {
		return nil, fmt.Errorf("failed to write payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		return nil, fmt.Errorf("upload failed (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var desc Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	return &desc, nil
}
