// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation and saved-query persistence.
//
// Two stores live here:
//
//   - ConversationStore keeps chat sessions as one JSON file per
//     conversation under ~/.deskchat/conversations/, written atomically
//     with fsync. Old sessions are pruned once MaxConversations is
//     exceeded.
//
//   - QueryStore keeps user-bookmarked SQL statements in a local SQLite
//     database (~/.deskchat/queries.db), with usage counters so the most
//     used queries list first.
//
// # Usage
//
//	store, err := storage.NewConversationStoreWithDir(dir)
//	id, err := store.Save(storage.FromModel(conv))
//
//	qs, err := storage.OpenQueryStore(path)
//	defer qs.Close()
//	_, err = qs.Save(ctx, "daily-gas", "SELECT * FROM trades WHERE ...")
package storage
