// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package ledger implements the local ledger core: the three record
// collections (sales, ice-debt adjustments, customer debts), their
// validation rules, the ice-debt accumulator, sales aggregates, and the
// durable SQLite-backed store.
//
// Collections are copy-on-write: every transform takes a snapshot and
// returns a new slice, never mutating the input in place. Records are
// immutable once created; the only field that ever changes is the synced
// flag, and only false -> true via MarkSynced (which returns a copy).
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// SaleEntry is one logged product sale.
type SaleEntry struct {
	ID          string   `json:"id"`
	Timestamp   string   `json:"timestamp"` // ISO-8601 creation instant
	Category    Category `json:"category"`
	ProductName string   `json:"productName"`
	Quantity    float64  `json:"quantity"`
	TotalPrice  float64  `json:"totalPrice"`
	Synced      bool     `json:"synced"`
}

// IceDebtAdjustment is one link in the ice bag debt chain. The chain is
// ordered most-recent-first by insertion; the head's CurrentDebt is the
// outstanding balance.
type IceDebtAdjustment struct {
	ID           string  `json:"id"`
	Timestamp    string  `json:"timestamp"`
	PreviousDebt float64 `json:"previousDebt"`
	Delivered    float64 `json:"delivered"` // bags added to debt
	Collected    float64 `json:"collected"` // bags removed from debt
	CurrentDebt  float64 `json:"currentDebt"`
	Note         string  `json:"note,omitempty"`
	Synced       bool    `json:"synced"`
}

// CustomerDebtEntry is one outstanding per-customer debt.
type CustomerDebtEntry struct {
	ID           string  `json:"id"`
	Timestamp    string  `json:"timestamp"`
	CustomerName string  `json:"customerName"`
	ItemName     string  `json:"itemName"`
	Quantity     float64 `json:"quantity"`
	Amount       float64 `json:"amount"`
	Synced       bool    `json:"synced"`
}

// RecordID returns the record's unique identifier.
func (e SaleEntry) RecordID() string         { return e.ID }
func (e IceDebtAdjustment) RecordID() string { return e.ID }
func (e CustomerDebtEntry) RecordID() string { return e.ID }

// IsSynced reports whether the record is believed to exist at the remote sink.
func (e SaleEntry) IsSynced() bool         { return e.Synced }
func (e IceDebtAdjustment) IsSynced() bool { return e.Synced }
func (e CustomerDebtEntry) IsSynced() bool { return e.Synced }

// MarkSynced returns a copy of the record with the synced flag set.
func (e SaleEntry) MarkSynced() SaleEntry                 { e.Synced = true; return e }
func (e IceDebtAdjustment) MarkSynced() IceDebtAdjustment { e.Synced = true; return e }
func (e CustomerDebtEntry) MarkSynced() CustomerDebtEntry { e.Synced = true; return e }

// newRecordID generates a collision-resistant record id.
func newRecordID() string { return uuid.New().String() }

// newTimestamp returns the current instant in ISO-8601 form.
func newTimestamp() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// NewSaleEntry validates the inputs and constructs an unsynced sale record.
// No record is constructed when validation fails.
func NewSaleEntry(category Category, productName string, quantity, totalPrice float64) (SaleEntry, error) {
	name, err := ValidateSale(category, productName, quantity)
	if err != nil {
		return SaleEntry{}, err
	}
	return SaleEntry{
		ID:          newRecordID(),
		Timestamp:   newTimestamp(),
		Category:    category,
		ProductName: name,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
	}, nil
}

// NewCustomerDebtEntry validates the inputs and constructs an unsynced
// customer debt record.
func NewCustomerDebtEntry(customerName, itemName string, quantity, amount float64) (CustomerDebtEntry, error) {
	customer, item, err := ValidateCustomerDebt(customerName, itemName, quantity, amount)
	if err != nil {
		return CustomerDebtEntry{}, err
	}
	return CustomerDebtEntry{
		ID:           newRecordID(),
		Timestamp:    newTimestamp(),
		CustomerName: customer,
		ItemName:     item,
		Quantity:     quantity,
		Amount:       amount,
	}, nil
}

// AppendSale prepends the entry so the collection stays most-recent-first.
func AppendSale(sales []SaleEntry, entry SaleEntry) []SaleEntry {
	return prepend(sales, entry)
}

// AppendIceAdjustment prepends the adjustment; the new record becomes the
// chain head.
func AppendIceAdjustment(chain []IceDebtAdjustment, adj IceDebtAdjustment) []IceDebtAdjustment {
	return prepend(chain, adj)
}

// AppendCustomerDebt prepends the entry.
func AppendCustomerDebt(debts []CustomerDebtEntry, entry CustomerDebtEntry) []CustomerDebtEntry {
	return prepend(debts, entry)
}

// RemoveCustomerDebt returns the collection without the entry carrying id.
// Removing an unknown id is a no-op, not an error.
func RemoveCustomerDebt(debts []CustomerDebtEntry, id string) []CustomerDebtEntry {
	out := make([]CustomerDebtEntry, 0, len(debts))
	for _, d := range debts {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// UnsyncedCount counts records still pending across all three collections.
func UnsyncedCount(sales []SaleEntry, chain []IceDebtAdjustment, debts []CustomerDebtEntry) int {
	n := 0
	for _, e := range sales {
		if !e.Synced {
			n++
		}
	}
	for _, e := range chain {
		if !e.Synced {
			n++
		}
	}
	for _, e := range debts {
		if !e.Synced {
			n++
		}
	}
	return n
}

func prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}
