// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package sheetsink is a reference implementation of the remote sink
// contract: a POST appends previously-unsynced records as rows, a GET
// returns the full remote snapshot. It exists so the system is runnable end
// to end without a spreadsheet web app; the client treats it exactly like
// the loosely-coupled sheet.
//
// Unlike the spreadsheet, appends here deduplicate by record id, so a client
// retry after an ambiguous push failure does not produce duplicate rows.
package sheetsink

import (
	"context"

	"github.com/Pornjaa/stock-jare/shopsync"
)

// AppendCounts reports how many rows an append actually inserted per kind
// (duplicates by id are not counted).
type AppendCounts struct {
	Sales        int
	IceDebt      int
	CustomerDebt int
}

// Total sums the inserted rows across kinds.
func (c AppendCounts) Total() int { return c.Sales + c.IceDebt + c.CustomerDebt }

// RowStore persists appended records and serves the snapshot. Implementations
// must append all three kinds of one payload atomically and return snapshots
// most-recent-first, mirroring the collections' insertion order.
type RowStore interface {
	AppendRows(ctx context.Context, payload shopsync.Payload) (AppendCounts, error)
	Snapshot(ctx context.Context) (shopsync.Snapshot, error)
}
