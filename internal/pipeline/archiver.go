package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// SnapshotArchiver implements domain.SnapshotArchiver by uploading each
// fetched payload as a JSON object to blob storage. Keys are partitioned by
// source and fetch date:
//
//	snapshots/polymarket/2026-09-01/<uuid>.json
type SnapshotArchiver struct {
	writer domain.BlobWriter
	newID  func() string
}

// NewSnapshotArchiver creates an archiver writing through the given blob
// writer.
func NewSnapshotArchiver(writer domain.BlobWriter) *SnapshotArchiver {
	return &SnapshotArchiver{
		writer: writer,
		newID:  uuid.NewString,
	}
}

// Archive serializes payload and uploads it under a key derived from the
// source and fetch time. Each call produces a distinct object, so repeated
// runs on the same day never overwrite each other.
func (a *SnapshotArchiver) Archive(ctx context.Context, source domain.Source, fetchedAt time.Time, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("pipeline: marshal snapshot for %s: %w", source, err)
	}

	key := fmt.Sprintf("snapshots/%s/%s/%s.json",
		source, fetchedAt.Format("2006-01-02"), a.newID())

	if err := a.writer.Put(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("pipeline: upload snapshot %s: %w", key, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.SnapshotArchiver = (*SnapshotArchiver)(nil)
