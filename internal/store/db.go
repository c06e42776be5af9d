package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/carmelngoyi/ccgoodies/internal/store/db"
)

// IDField is the document key holding the storage-assigned identifier.
const IDField = "_id"

// sqlite extended result code for unique-constraint violations.
const sqliteConstraintUnique = 2067

// DB is a [Store] backed by a SQLite database. Documents are kept as JSON
// bodies in a single table and filtered with json_extract, so collections
// need no per-collection schema.
type DB struct {
	db    *sql.DB
	newID func() string
}

// NewDB opens (and if needed creates and migrates) the database at dbPath.
func NewDB(ctx context.Context, logger *slog.Logger, dbPath string) (*DB, error) {
	handle, err := db.Open(ctx, logger, dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{
		db:    handle,
		newID: uuid.NewString,
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// FindOne satisfies the [Store] interface.
func (d *DB) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	where, args := buildWhere(collection, filter)
	row := d.db.QueryRowContext(ctx,
		"select body from documents where "+where+" order by rowid limit 1", args...)

	var body []byte
	switch err := row.Scan(&body); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return decodeBody(body)
}

// FindMany satisfies the [Store] interface.
func (d *DB) FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	where, args := buildWhere(collection, filter)
	rows, err := d.db.QueryContext(ctx,
		"select body from documents where "+where+" order by rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Document
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		doc, err := decodeBody(body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// InsertOne satisfies the [Store] interface. The caller's document is not
// mutated; the assigned id is stored under [IDField] and returned.
func (d *DB) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	stored := maps.Clone(doc)
	if stored == nil {
		stored = Document{}
	}
	id := d.newID()
	stored[IDField] = id

	body, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	_, err = d.db.ExecContext(ctx,
		"insert into documents (collection, id, body) values (?, ?, ?)",
		collection, id, string(body))
	if isUniqueViolation(err) {
		return "", ErrAlreadyExists
	} else if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

// UpdateOne satisfies the [Store] interface.
func (d *DB) UpdateOne(ctx context.Context, collection string, filter Filter, patch Document) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	where, args := buildWhere(collection, filter)
	args = append([]any{string(body)}, args...)
	_, err = d.db.ExecContext(ctx,
		"update documents set body = json_patch(body, ?) where rowid = "+
			"(select rowid from documents where "+where+" order by rowid limit 1)",
		args...)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	} else if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return nil
}

// DeleteOne satisfies the [Store] interface.
func (d *DB) DeleteOne(ctx context.Context, collection string, filter Filter) error {
	where, args := buildWhere(collection, filter)
	_, err := d.db.ExecContext(ctx,
		"delete from documents where rowid = "+
			"(select rowid from documents where "+where+" order by rowid limit 1)",
		args...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

var _ Store = (*DB)(nil)

// buildWhere translates an exact-match filter into a WHERE clause over the
// JSON body. Keys are bound as json paths, never interpolated, so filter
// contents cannot alter the query shape.
func buildWhere(collection string, filter Filter) (clause string, args []any) {
	clause = "collection = ?"
	args = append(args, collection)
	for _, key := range slices.Sorted(maps.Keys(filter)) {
		clause += " and json_extract(body, ?) = ?"
		args = append(args, "$."+key, filter[key])
	}
	return clause, args
}

func decodeBody(body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqliteConstraintUnique
}
