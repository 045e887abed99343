package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"heliocat/internal/catalog"
)

const entryColumns = "id, source, provider, physobs, fileid, observation_time_start, observation_time_end, instrument, size, wavemin, wavemax, path, download_time, starred"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*catalog.Entry, error) {
	var (
		id          int64
		source      sql.NullString
		provider    sql.NullString
		physobs     sql.NullString
		fileid      sql.NullString
		obsStartRaw sql.NullString
		obsEndRaw   sql.NullString
		instrument  sql.NullString
		size        sql.NullFloat64
		wavemin     sql.NullFloat64
		wavemax     sql.NullFloat64
		path        sql.NullString
		downloadRaw sql.NullString
		starred     sql.NullInt64
	)

	if err := scanner.Scan(
		&id,
		&source,
		&provider,
		&physobs,
		&fileid,
		&obsStartRaw,
		&obsEndRaw,
		&instrument,
		&size,
		&wavemin,
		&wavemax,
		&path,
		&downloadRaw,
		&starred,
	); err != nil {
		return nil, err
	}

	entry := &catalog.Entry{
		ID:         id,
		Source:     source.String,
		Provider:   provider.String,
		Physobs:    physobs.String,
		FileID:     fileid.String,
		Instrument: instrument.String,
		Path:       path.String,
	}
	if size.Valid {
		v := size.Float64
		entry.Size = &v
	}
	if wavemin.Valid {
		v := wavemin.Float64
		entry.Wavemin = &v
	}
	if wavemax.Valid {
		v := wavemax.Float64
		entry.Wavemax = &v
	}
	if starred.Valid {
		entry.Starred = starred.Int64 != 0
	}

	if obsStartRaw.Valid {
		if t, err := parseTimeString(obsStartRaw.String); err == nil {
			entry.ObservationTimeStart = &t
		}
	}
	if obsEndRaw.Valid {
		if t, err := parseTimeString(obsEndRaw.String); err == nil {
			entry.ObservationTimeEnd = &t
		}
	}
	if downloadRaw.Valid {
		if t, err := parseTimeString(downloadRaw.String); err == nil {
			entry.DownloadTime = &t
		}
	}
	return entry, nil
}

// Save inserts a new entry along with its header entries and tags. The
// entry must not be persisted yet; on success its ID and the IDs of its
// header entries are filled in.
func (s *Store) Save(ctx context.Context, entry *catalog.Entry) error {
	if entry == nil {
		return errors.New("nil entry")
	}
	if entry.ID != 0 {
		return fmt.Errorf("entry already persisted with id %d", entry.ID)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO data (
            source, provider, physobs, fileid,
            observation_time_start, observation_time_end, instrument,
            size, wavemin, wavemax, path, download_time, starred,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(entry.Source),
		nullableString(entry.Provider),
		nullableString(entry.Physobs),
		nullableString(entry.FileID),
		nullableTime(entry.ObservationTimeStart),
		nullableTime(entry.ObservationTimeEnd),
		nullableString(entry.Instrument),
		nullableFloat(entry.Size),
		nullableFloat(entry.Wavemin),
		nullableFloat(entry.Wavemax),
		nullableString(entry.Path),
		nullableTime(entry.DownloadTime),
		boolToInt(entry.Starred),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	headerIDs := make([]int64, len(entry.HeaderEntries))
	for i, header := range entry.HeaderEntries {
		res, err := tx.ExecContext(
			ctx,
			"INSERT INTO fitsheaderentries (dbentry_id, position, key, value) VALUES (?, ?, ?, ?)",
			entryID,
			i,
			header.Key,
			header.Value,
		)
		if err != nil {
			return fmt.Errorf("insert header entry %q: %w", header.Key, err)
		}
		headerIDs[i], err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("header entry last insert id: %w", err)
		}
	}

	for _, tag := range entry.Tags {
		if err := associateTag(ctx, tx, entryID, tag.Name); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	entry.ID = entryID
	for i := range entry.HeaderEntries {
		entry.HeaderEntries[i].ID = headerIDs[i]
	}
	return nil
}

// Update rewrites a persisted entry in place, replacing its header
// entries and tag associations with the current in-memory state.
func (s *Store) Update(ctx context.Context, entry *catalog.Entry) error {
	if entry == nil {
		return errors.New("nil entry")
	}
	if entry.ID == 0 {
		return errors.New("entry has no id")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(
		ctx,
		`UPDATE data SET
            source = ?, provider = ?, physobs = ?, fileid = ?,
            observation_time_start = ?, observation_time_end = ?, instrument = ?,
            size = ?, wavemin = ?, wavemax = ?, path = ?, download_time = ?,
            starred = ?, updated_at = ?
        WHERE id = ?`,
		nullableString(entry.Source),
		nullableString(entry.Provider),
		nullableString(entry.Physobs),
		nullableString(entry.FileID),
		nullableTime(entry.ObservationTimeStart),
		nullableTime(entry.ObservationTimeEnd),
		nullableString(entry.Instrument),
		nullableFloat(entry.Size),
		nullableFloat(entry.Wavemin),
		nullableFloat(entry.Wavemax),
		nullableString(entry.Path),
		nullableTime(entry.DownloadTime),
		boolToInt(entry.Starred),
		now,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM fitsheaderentries WHERE dbentry_id = ?", entry.ID); err != nil {
		return fmt.Errorf("clear header entries: %w", err)
	}
	headerIDs := make([]int64, len(entry.HeaderEntries))
	for i, header := range entry.HeaderEntries {
		res, err := tx.ExecContext(
			ctx,
			"INSERT INTO fitsheaderentries (dbentry_id, position, key, value) VALUES (?, ?, ?, ?)",
			entry.ID,
			i,
			header.Key,
			header.Value,
		)
		if err != nil {
			return fmt.Errorf("insert header entry %q: %w", header.Key, err)
		}
		headerIDs[i], err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("header entry last insert id: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM association WHERE entry_id = ?", entry.ID); err != nil {
		return fmt.Errorf("clear tag associations: %w", err)
	}
	for _, tag := range entry.Tags {
		if err := associateTag(ctx, tx, entry.ID, tag.Name); err != nil {
			return err
		}
	}
	if err := pruneOrphanTags(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}

	for i := range entry.HeaderEntries {
		entry.HeaderEntries[i].ID = headerIDs[i]
	}
	return nil
}

// GetByID fetches a single entry with its header entries and tags.
// It returns (nil, nil) when no entry carries the ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*catalog.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM data WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	if err := s.loadRelations(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListOptions narrow the entries returned by List. Zero values leave a
// filter inactive.
type ListOptions struct {
	Instrument string
	Starred    *bool
	Tag        string
}

// List returns entries ordered by ID, optionally filtered.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*catalog.Entry, error) {
	var (
		clauses []string
		args    []any
	)
	if opts.Instrument != "" {
		clauses = append(clauses, "instrument = ?")
		args = append(args, opts.Instrument)
	}
	if opts.Starred != nil {
		clauses = append(clauses, "starred = ?")
		args = append(args, boolToInt(*opts.Starred))
	}
	if opts.Tag != "" {
		clauses = append(clauses, "id IN (SELECT entry_id FROM association WHERE tag_name = ?)")
		args = append(args, opts.Tag)
	}

	query := "SELECT " + entryColumns + " FROM data"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*catalog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	for _, entry := range entries {
		if err := s.loadRelations(ctx, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Remove deletes an entry; header entries and tag associations cascade.
func (s *Store) Remove(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM data WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	if err := pruneOrphanTags(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear removes every entry and tag from the catalog.
func (s *Store) Clear(ctx context.Context) error {
	for _, stmt := range []string{
		"DELETE FROM data",
		"DELETE FROM tags",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	return nil
}

// Stats reports entry counts grouped by instrument. Entries without an
// instrument are grouped under the empty string.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT COALESCE(instrument, ''), COUNT(1) FROM data GROUP BY COALESCE(instrument, '')")
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var (
			instrument string
			count      int
		)
		if err := rows.Scan(&instrument, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[instrument] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

func (s *Store) loadRelations(ctx context.Context, entry *catalog.Entry) error {
	headers, err := s.loadHeaderEntries(ctx, entry.ID)
	if err != nil {
		return err
	}
	entry.HeaderEntries = headers

	tags, err := s.loadTags(ctx, entry.ID)
	if err != nil {
		return err
	}
	entry.Tags = tags
	return nil
}

func (s *Store) loadHeaderEntries(ctx context.Context, entryID int64) ([]catalog.HeaderEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, key, value FROM fitsheaderentries WHERE dbentry_id = ? ORDER BY position", entryID)
	if err != nil {
		return nil, fmt.Errorf("load header entries: %w", err)
	}
	defer rows.Close()

	var headers []catalog.HeaderEntry
	for rows.Next() {
		var header catalog.HeaderEntry
		if err := rows.Scan(&header.ID, &header.Key, &header.Value); err != nil {
			return nil, fmt.Errorf("scan header entry: %w", err)
		}
		headers = append(headers, header)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate header entries: %w", err)
	}
	return headers, nil
}

func (s *Store) loadTags(ctx context.Context, entryID int64) ([]catalog.Tag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tag_name FROM association WHERE entry_id = ? ORDER BY rowid", entryID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	var tags []catalog.Tag
	for rows.Next() {
		var tag catalog.Tag
		if err := rows.Scan(&tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}
