// Package store persists catalog entries in SQLite.
//
// The store is the only component that assigns entry IDs: an entry is a
// plain record until Save writes it, after which its ID, header entry
// IDs, and tag associations round-trip through the database. Schema
// changes ship as embedded migrations applied on open.
package store
