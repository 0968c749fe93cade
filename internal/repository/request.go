package repository

import (
	"context"

	"barangay/internal/model"
)

// RequestRepository persists document requests. The ledger stays the source of
// truth while the process runs; the repository only mirrors it so state
// survives restarts.
type RequestRepository interface {
	// Save inserts the request or overwrites the mutable fields of an existing row.
	Save(ctx context.Context, req *model.DocumentRequest) error

	// Delete removes a request by ID. Deleting a missing row is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored request, oldest first.
	List(ctx context.Context) ([]model.DocumentRequest, error)
}
