// Package storage stores payment-proof images and issued documents in an
// S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Key prefixes for the two kinds of objects the service keeps.
const (
	PrefixPaymentProofs = "payment-proofs"
	PrefixDocuments     = "documents"
)

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used by the request service.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ObjectKey builds prefix/<nanoid><ext>, keeping only the extension of the
// client-supplied filename.
func ObjectKey(prefix, filename string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate object id: %w", err)
	}
	return path.Join(prefix, id+strings.ToLower(path.Ext(filename))), nil
}

// IsObjectKey reports whether ref points into one of our prefixes rather than
// at an external URL or an opaque client reference.
func IsObjectKey(ref string) bool {
	return strings.HasPrefix(ref, PrefixPaymentProofs+"/") || strings.HasPrefix(ref, PrefixDocuments+"/")
}
