package store

import (
	"context"
	"database/sql"
	"fmt"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func associateTag(ctx context.Context, db execer, entryID int64, name string) error {
	if _, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO tags (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("insert tag %q: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, "INSERT OR IGNORE INTO association (tag_name, entry_id) VALUES (?, ?)", name, entryID); err != nil {
		return fmt.Errorf("associate tag %q: %w", name, err)
	}
	return nil
}

// Tags with no remaining associations disappear from the catalog.
func pruneOrphanTags(ctx context.Context, db execer) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM tags WHERE name NOT IN (SELECT tag_name FROM association)"); err != nil {
		return fmt.Errorf("prune tags: %w", err)
	}
	return nil
}

// Tag attaches a named tag to an entry, creating the tag if needed.
func (s *Store) Tag(ctx context.Context, entryID int64, name string) error {
	if exists, err := s.entryExists(ctx, entryID); err != nil {
		return err
	} else if !exists {
		return ErrEntryNotFound
	}
	return associateTag(ctx, s.db, entryID, name)
}

// Untag detaches a tag from an entry. The tag itself is removed once
// nothing references it.
func (s *Store) Untag(ctx context.Context, entryID int64, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM association WHERE entry_id = ? AND tag_name = ?", entryID, name)
	if err != nil {
		return fmt.Errorf("untag entry %d: %w", entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return pruneOrphanTags(ctx, s.db)
}

// SetStarred flips the starred flag on a persisted entry.
func (s *Store) SetStarred(ctx context.Context, entryID int64, starred bool) error {
	res, err := s.db.ExecContext(
		ctx,
		"UPDATE data SET starred = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now') WHERE id = ?",
		boolToInt(starred),
		entryID,
	)
	if err != nil {
		return fmt.Errorf("star entry %d: %w", entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// TagNames lists every tag known to the catalog in lexical order.
func (s *Store) TagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag names: %w", err)
	}
	return names, nil
}

func (s *Store) entryExists(ctx context.Context, id int64) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM data WHERE id = ?", id)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check entry %d: %w", id, err)
	}
	return count > 0, nil
}
