package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"edr/internal/domain/audit"
)

// compressThreshold is the payload size above which changes are stored
// zstd-compressed.
const compressThreshold = 10 * 1024

// AuditTrail is the PostgreSQL audit.Trail implementation.
type AuditTrail struct {
	txm     *TxManager
	table   string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewAuditTrail creates the audit store on the prefixed audit_log table.
func NewAuditTrail(txm *TxManager, prefix string) (*AuditTrail, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditTrail{
		txm:     txm,
		table:   prefix + "audit_log",
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Record implements audit.Trail. Large change payloads are compressed.
func (t *AuditTrail) Record(ctx context.Context, entry audit.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	changes := entry.Changes
	var compressed []byte
	algo := "none"
	if len(changes) > compressThreshold {
		compressed = t.encoder.EncodeAll(changes, nil)
		changes = nil
		algo = "zstd"
	}

	sql := fmt.Sprintf(`
		INSERT INTO %s (id, entity, entity_id, action, acting_user, at, changes, changes_compressed, compression_algo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, t.table)

	querier := t.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.Entity, entry.EntityID, entry.Action,
		entry.User, entry.At, changes, compressed, algo)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent implements audit.Trail. Entries come back newest first with
// compressed payloads expanded.
func (t *AuditTrail) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "entity", "entity_id", "action", "acting_user", "at", "changes", "changes_compressed", "compression_algo").
		From(t.table).
		OrderBy("at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := t.txm.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry      audit.Entry
			changes    json.RawMessage
			compressed []byte
			algo       string
		)
		if err := rows.Scan(&entry.ID, &entry.Entity, &entry.EntityID, &entry.Action,
			&entry.User, &entry.At, &changes, &compressed, &algo); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if algo == "zstd" && len(compressed) > 0 {
			decoded, err := t.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit entry %s: %w", entry.ID, err)
			}
			changes = decoded
		}
		entry.Changes = changes
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ audit.Trail = (*AuditTrail)(nil)
