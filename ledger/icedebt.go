// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import "math"

// CurrentIceDebt returns the outstanding bag balance: the CurrentDebt of the
// chain head, or 0 when the chain is empty. The head is the most recently
// appended adjustment, not the one with the latest timestamp (client clocks
// skew; insertion order is authoritative).
func CurrentIceDebt(chain []IceDebtAdjustment) float64 {
	if len(chain) == 0 {
		return 0
	}
	return chain[0].CurrentDebt
}

// RecordAdjustment constructs a new adjustment and prepends it to the chain.
//
// PreviousDebt carries forward from the current head unless the caller
// supplies explicitPrevious, which overrides the chain value (used when the
// shopkeeper manually corrects the carried balance). Delivered and collected
// are coerced permissively: NaN, infinite, or negative inputs count as 0.
// The resulting balance may go negative; that means the shop is ahead.
//
// The new chain and its head are returned; persisting them is the caller's
// responsibility.
func RecordAdjustment(chain []IceDebtAdjustment, delivered, collected float64, note string, explicitPrevious *float64) ([]IceDebtAdjustment, IceDebtAdjustment) {
	delivered = coerceBags(delivered)
	collected = coerceBags(collected)

	previous := CurrentIceDebt(chain)
	if explicitPrevious != nil {
		previous = coerceBalance(*explicitPrevious)
	}

	adj := IceDebtAdjustment{
		ID:           newRecordID(),
		Timestamp:    newTimestamp(),
		PreviousDebt: previous,
		Delivered:    delivered,
		Collected:    collected,
		CurrentDebt:  previous + delivered - collected,
		Note:         note,
	}
	return AppendIceAdjustment(chain, adj), adj
}

// coerceBags treats unusable bag counts as zero.
func coerceBags(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// coerceBalance keeps negative balances (shop ahead) but drops non-finite input.
func coerceBalance(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
