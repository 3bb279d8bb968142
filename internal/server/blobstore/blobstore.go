// Package blobstore stores and retrieves opaque byte payloads (resumes,
// supporting documents) under string keys and issues time-limited download
// URLs. Every key is prefixed by its owner's email; that prefix is the
// authorization boundary for direct blob access.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"
)

// DownloadURLValidity is the lifetime of issued download URLs. Expiry is
// enforced by the backing store, not by this layer.
const DownloadURLValidity = 3600 * time.Second

// Download is a lazily consumed blob body. The caller must close Body and
// should forward it without buffering the whole payload.
type Download struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
}

type BlobStore interface {
	// Store writes the payload under key and returns a presigned download
	// URL for it.
	Store(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Fetch opens the blob at key for streaming.
	Fetch(ctx context.Context, key string) (*Download, error)

	// Delete removes the blob at key.
	Delete(ctx context.Context, key string) error
}

// ResumeKey builds the storage key for a top-level resume upload:
// {owner}/{unixMillis}-{fileName}. Uniqueness is practical, not
// cryptographic; a same-millisecond collision of the same filename by the
// same owner overwrites.
func ResumeKey(ownerEmail, fileName string) string {
	return fmt.Sprintf("%s/%d-%s", ownerEmail, time.Now().UnixMilli(), fileName)
}

// SupportingDocKey builds the storage key for a supporting document:
// {owner}/{applicationId}/supporting_docs/{unixMillis}-{fileName}.
func SupportingDocKey(ownerEmail, applicationID, fileName string) string {
	return fmt.Sprintf("%s/%s/supporting_docs/%d-%s", ownerEmail, applicationID, time.Now().UnixMilli(), fileName)
}
