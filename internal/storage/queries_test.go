// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testQueryStore(t *testing.T) *QueryStore {
	t.Helper()
	store, err := OpenQueryStore(filepath.Join(t.TempDir(), "queries.db"))
	if err != nil {
		t.Fatalf("OpenQueryStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestQueryStore_SaveAndGet(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "daily-gas", "SELECT * FROM trades WHERE commodity = 'GAS'")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == 0 {
		t.Error("saved query has no ID")
	}
	if saved.UseCount != 0 {
		t.Errorf("new query UseCount = %d", saved.UseCount)
	}

	got, err := store.Get(ctx, "daily-gas")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SQL != "SELECT * FROM trades WHERE commodity = 'GAS'" {
		t.Errorf("SQL = %q", got.SQL)
	}
}

func TestQueryStore_SaveValidation(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "", "SELECT 1"); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty name err = %v", err)
	}
	if _, err := store.Save(ctx, "name", "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("blank SQL err = %v", err)
	}
}

func TestQueryStore_SaveReplacesKeepingHistory(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	store.Save(ctx, "pnl", "SELECT 1")
	if err := store.MarkUsed(ctx, "pnl"); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}

	updated, err := store.Save(ctx, "pnl", "SELECT 2")
	if err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	if updated.SQL != "SELECT 2" {
		t.Errorf("SQL = %q", updated.SQL)
	}
	if updated.UseCount != 1 {
		t.Errorf("UseCount = %d, want history preserved", updated.UseCount)
	}
}

func TestQueryStore_MarkUsed(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	store.Save(ctx, "q", "SELECT 1")
	store.MarkUsed(ctx, "q")
	store.MarkUsed(ctx, "q")

	got, _ := store.Get(ctx, "q")
	if got.UseCount != 2 {
		t.Errorf("UseCount = %d, want 2", got.UseCount)
	}

	if err := store.MarkUsed(ctx, "missing"); !errors.Is(err, ErrQueryNotFound) {
		t.Errorf("MarkUsed(missing) err = %v", err)
	}
}

func TestQueryStore_ListOrdersByUse(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	store.Save(ctx, "a", "SELECT 1")
	store.Save(ctx, "b", "SELECT 2")
	store.MarkUsed(ctx, "a")

	queries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("List returned %d queries", len(queries))
	}
	if queries[0].Name != "a" {
		t.Errorf("most recently used first: got %q", queries[0].Name)
	}
}

func TestQueryStore_Search(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	store.Save(ctx, "gas-trades", "SELECT * FROM trades")
	store.Save(ctx, "book-pnl", "SELECT SUM(ltd_realized_value) FROM pnl")

	results, err := store.Search(ctx, "REALIZED")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "book-pnl" {
		t.Errorf("Search results = %+v", results)
	}

	// Empty query lists everything.
	all, _ := store.Search(ctx, "")
	if len(all) != 2 {
		t.Errorf("empty Search returned %d", len(all))
	}
}

func TestQueryStore_Delete(t *testing.T) {
	store := testQueryStore(t)
	ctx := context.Background()

	store.Save(ctx, "q", "SELECT 1")
	if err := store.Delete(ctx, "q"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "q"); !errors.Is(err, ErrQueryNotFound) {
		t.Errorf("Get after delete err = %v", err)
	}
	if err := store.Delete(ctx, "q"); !errors.Is(err, ErrQueryNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}

func TestQueryStore_PersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queries.db")
	ctx := context.Background()

	store, err := OpenQueryStore(path)
	if err != nil {
		t.Fatalf("OpenQueryStore: %v", err)
	}
	store.Save(ctx, "persistent", "SELECT 42")
	store.Close()

	reopened, err := OpenQueryStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "persistent")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.SQL != "SELECT 42" {
		t.Errorf("SQL = %q", got.SQL)
	}

	n, _ := reopened.Count(ctx)
	if n != 1 {
		t.Errorf("Count = %d", n)
	}
}
