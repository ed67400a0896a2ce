// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/google/uuid"

// Attachment describes one file sent with a user message.
//
// Payload keeps the original bytes for the lifetime of the owning message so
// a retry re-sends real file content instead of an empty stand-in. The blob
// reference identifies the local copy and is invalidated when the owning
// conversation is deleted.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	BlobRef  string `json:"blob_ref"`

	Payload []byte `json:"-"`
}

// NewAttachment builds an attachment descriptor around a raw payload.
func NewAttachment(name, mimeType string, payload []byte) Attachment {
	return Attachment{
		Name:     name,
		MimeType: mimeType,
		BlobRef:  uuid.NewString(),
		Payload:  payload,
	}
}

// Size returns the payload size in bytes.
func (a Attachment) Size() int64 {
	return int64(len(a.Payload))
}
