package testsupport

import (
	"context"
	"testing"

	"heliocat/internal/catalog"
	"heliocat/internal/config"
	"heliocat/internal/store"
)

// MustOpenStore opens a catalog store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustSave persists an entry for tests using the provided store.
func MustSave(t testing.TB, st *store.Store, entry *catalog.Entry) *catalog.Entry {
	t.Helper()

	if err := st.Save(context.Background(), entry); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
	return entry
}
