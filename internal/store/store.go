// Package store provides the document persistence layer for the catalog,
// order, and user collections.
package store

import "context"

const (
	// ErrNotFound is returned when no document matches a filter.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned when an insert violates a uniqueness
	// constraint, such as a duplicate user email.
	ErrAlreadyExists Error = "already exists"
	// ErrInvalidDocument is returned when a document cannot be encoded.
	ErrInvalidDocument Error = "invalid document"
	// ErrInternal is returned for any other type of error.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the store implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Document is a schemaless record, stored as JSON. The store assigns each
// document an opaque string identifier under the "_id" key on insert.
type Document = map[string]any

// Filter selects documents by exact match on top-level fields. An empty
// filter matches every document in the collection.
type Filter = map[string]any

// Store is the narrow document-database interface consumed by the handlers
// and the authentication flow. Every method is a single atomic call; there
// are no multi-operation transactions.
type Store interface {
	// FindOne returns the first document in the collection matching filter.
	// An [ErrNotFound] is returned if nothing matches.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	// FindMany returns all documents in the collection matching filter, in
	// insertion order.
	FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error)
	// InsertOne stores a new document and returns its assigned id. An
	// [ErrAlreadyExists] is returned if the document violates a uniqueness
	// constraint.
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)
	// UpdateOne merges patch into the first document matching filter. Fields
	// present in patch overwrite the stored fields; other fields are kept.
	// Updating a document that does not exist is not an error.
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Document) error
	// DeleteOne removes the first document matching filter. Deleting a
	// document that does not exist is not an error.
	DeleteOne(ctx context.Context, collection string, filter Filter) error
	// Close releases any resources held by the store. An error is returned
	// if the store cannot be cleanly closed.
	Close() error
}
