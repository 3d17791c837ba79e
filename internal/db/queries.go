package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/errors"
)

const entryColumns = `
	id, title, author, category, status, content,
	tags_json, media_type, media_url, is_locked, views,
	publish_date, created_at, updated_at`

// Insert stores a new entry.
func Insert(ctx context.Context, db *sql.DB, e *entry.Entry) error {
	tagsJSON, err := tagsToJSON(e.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO entries (
			id, title, author, category, status, content,
			tags_json, media_type, media_url, is_locked, views,
			publish_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		e.ID, e.Title, toNullString(e.Author), string(e.Category), string(e.Status), e.Content,
		tagsJSON, toNullString(e.MediaType), toNullString(e.MediaURL), boolToInt(e.IsLocked), e.Views,
		toNullInt64(e.PublishDate), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return errors.NewStore(err)
	}

	return nil
}

// GetByID fetches a single entry by id.
func GetByID(ctx context.Context, db *sql.DB, id string) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`

	e, err := scanEntry(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewStore(err)
	}
	return e, nil
}

// List returns entries ordered by recency (newest first). A nil category
// means no filter.
func List(ctx context.Context, db *sql.DB, category *entry.Category) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	var args []any
	if category != nil {
		query += ` WHERE category = ?`
		args = append(args, string(*category))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStore(err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntryRows(rows)
		if err != nil {
			return nil, errors.NewStore(err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStore(err)
	}

	return entries, nil
}

// UpdateByID persists every mutable field of e and bumps updated_at.
func UpdateByID(ctx context.Context, db *sql.DB, e *entry.Entry) error {
	tagsJSON, err := tagsToJSON(e.Tags)
	if err != nil {
		return errors.NewInternal(err)
	}

	e.UpdatedAt = time.Now().Unix()

	query := `
		UPDATE entries SET
			title = ?, author = ?, category = ?, status = ?, content = ?,
			tags_json = ?, media_type = ?, media_url = ?, is_locked = ?,
			publish_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query,
		e.Title, toNullString(e.Author), string(e.Category), string(e.Status), e.Content,
		tagsJSON, toNullString(e.MediaType), toNullString(e.MediaURL), boolToInt(e.IsLocked),
		toNullInt64(e.PublishDate), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return errors.NewStore(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStore(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(e.ID)
	}

	return nil
}

// DeleteByID removes an entry permanently.
func DeleteByID(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return errors.NewStore(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStore(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// IncrementViews bumps the read counter without touching updated_at.
func IncrementViews(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `UPDATE entries SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return errors.NewStore(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStore(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// CountByCategory returns the number of entries per category.
func CountByCategory(ctx context.Context, db *sql.DB) (map[entry.Category]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT category, COUNT(*) FROM entries GROUP BY category`)
	if err != nil {
		return nil, errors.NewStore(err)
	}
	defer rows.Close()

	counts := map[entry.Category]int{}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, errors.NewStore(err)
		}
		counts[entry.Category(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStore(err)
	}

	return counts, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry scans a single row into an Entry struct.
func scanEntry(row *sql.Row) (*entry.Entry, error) {
	return scanEntryFrom(row)
}

// scanEntryRows scans the current row of a result set into an Entry struct.
func scanEntryRows(rows *sql.Rows) (*entry.Entry, error) {
	return scanEntryFrom(rows)
}

func scanEntryFrom(row rowScanner) (*entry.Entry, error) {
	var (
		e           entry.Entry
		author      sql.NullString
		category    string
		status      string
		tagsJSON    sql.NullString
		mediaType   sql.NullString
		mediaURL    sql.NullString
		isLocked    int
		publishDate sql.NullInt64
	)

	err := row.Scan(
		&e.ID, &e.Title, &author, &category, &status, &e.Content,
		&tagsJSON, &mediaType, &mediaURL, &isLocked, &e.Views,
		&publishDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Author = fromNullString(author)
	e.Category = entry.Category(category)
	e.Status = entry.Status(status)
	e.MediaType = fromNullString(mediaType)
	e.MediaURL = fromNullString(mediaURL)
	e.IsLocked = isLocked != 0
	if publishDate.Valid {
		e.PublishDate = &publishDate.Int64
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &e.Tags); err != nil {
			return nil, err
		}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	return &e, nil
}

// tagsToJSON serializes tags, using NULL for an empty set.
func tagsToJSON(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// toNullInt64 converts a *int64 to sql.NullInt64.
func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
