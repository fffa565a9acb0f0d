// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package shopsync implements the sync reconciler: it merges a remote
// snapshot of the sheet sink with the local ledger under a
// local-unsynced-precedence policy, then pushes the pending subset with a
// one-way fire-and-forget POST.
package shopsync

import "github.com/Pornjaa/stock-jare/ledger"

// Payload is the write contract of the remote sink: one combined JSON
// object carrying only previously-unsynced records. Empty kinds are
// omitted; the sink must tolerate any key being absent.
type Payload struct {
	Sales        []ledger.SaleEntry         `json:"sales,omitempty"`
	IceDebt      []ledger.IceDebtAdjustment `json:"iceDebt,omitempty"`
	CustomerDebt []ledger.CustomerDebtEntry `json:"customerDebt,omitempty"`
}

// Empty reports whether the payload carries no records at all.
func (p Payload) Empty() bool {
	return len(p.Sales) == 0 && len(p.IceDebt) == 0 && len(p.CustomerDebt) == 0
}

// Snapshot is the read contract of the remote sink: the full current remote
// state of previously-pushed records. The sink has no notion of sync flags,
// so every record it returns is implicitly synced.
type Snapshot struct {
	Sales        []ledger.SaleEntry         `json:"sales"`
	IceDebt      []ledger.IceDebtAdjustment `json:"iceDebt"`
	CustomerDebt []ledger.CustomerDebtEntry `json:"customerDebt"`
}
