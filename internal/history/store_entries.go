package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timestampLayout is fixed width so processed_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = `id, path, size_bytes, mod_time_ns, status, detail, run_id,
	stripped, extracted, ocr, merged, processed_at`

// Record inserts or replaces the ledger row for entry.Path. A zero
// ProcessedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	ctx = ensureContext(ctx)
	if entry.Path == "" {
		return errors.New("history record: empty path")
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
INSERT INTO processed_files (path, size_bytes, mod_time_ns, status, detail, run_id,
	stripped, extracted, ocr, merged, processed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	size_bytes = excluded.size_bytes,
	mod_time_ns = excluded.mod_time_ns,
	status = excluded.status,
	detail = excluded.detail,
	run_id = excluded.run_id,
	stripped = excluded.stripped,
	extracted = excluded.extracted,
	ocr = excluded.ocr,
	merged = excluded.merged,
	processed_at = excluded.processed_at`,
			entry.Path, entry.SizeBytes, entry.ModTime.UnixNano(), string(entry.Status), entry.Detail, entry.RunID,
			entry.Stripped, entry.Extracted, entry.OCR, entry.Merged, entry.ProcessedAt.UTC().Format(timestampLayout),
		)
		if err != nil {
			return fmt.Errorf("record %s: %w", entry.Path, err)
		}
		return nil
	})
}

// Lookup returns the ledger row for path.
func (s *Store) Lookup(ctx context.Context, path string) (Entry, bool, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM processed_files WHERE path = ?", path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup %s: %w", path, err)
	}
	return entry, true, nil
}

// List returns the most recently processed entries first. A limit of zero or
// less returns every row.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + entryColumns + " FROM processed_files ORDER BY processed_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Remove deletes the ledger row for path so the next scan reprocesses it.
func (s *Store) Remove(ctx context.Context, path string) (bool, error) {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM processed_files WHERE path = ?", path)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return affected > 0, nil
}

// Clear deletes every ledger row and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM processed_files")
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry       Entry
		modTimeNS   int64
		status      string
		processedAt string
	)
	if err := row.Scan(
		&entry.ID, &entry.Path, &entry.SizeBytes, &modTimeNS, &status, &entry.Detail, &entry.RunID,
		&entry.Stripped, &entry.Extracted, &entry.OCR, &entry.Merged, &processedAt,
	); err != nil {
		return Entry{}, err
	}
	entry.ModTime = time.Unix(0, modTimeNS)
	entry.Status = Status(status)
	if ts, err := time.Parse(timestampLayout, processedAt); err == nil {
		entry.ProcessedAt = ts
	}
	return entry, nil
}
