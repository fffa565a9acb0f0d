// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"sort"
	"time"
)

// CategoryTotal aggregates sales of one category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
	Quantity float64  `json:"quantity"`
}

// DailyRevenue is the summed sale amount of one calendar day.
type DailyRevenue struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// SalesSummary holds the dashboard aggregates derived from the sales
// collection.
type SalesSummary struct {
	TotalAmount   float64         `json:"totalAmount"`
	TotalQuantity float64         `json:"totalQuantity"`
	Categories    []CategoryTotal `json:"categories"`
	Daily         []DailyRevenue  `json:"daily"`
}

// Summarize computes the dashboard aggregates. Categories with no revenue
// are omitted from the breakdown; the daily trend is sorted by date.
func Summarize(sales []SaleEntry) SalesSummary {
	var summary SalesSummary

	byCategory := make(map[Category]*CategoryTotal)
	byDate := make(map[string]float64)

	for _, e := range sales {
		summary.TotalAmount += e.TotalPrice
		summary.TotalQuantity += e.Quantity

		ct := byCategory[e.Category]
		if ct == nil {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Amount += e.TotalPrice
		ct.Quantity += e.Quantity

		byDate[saleDate(e.Timestamp)] += e.TotalPrice
	}

	for _, c := range Categories() {
		if ct := byCategory[c]; ct != nil && ct.Amount > 0 {
			summary.Categories = append(summary.Categories, *ct)
		}
	}

	for date, amount := range byDate {
		summary.Daily = append(summary.Daily, DailyRevenue{Date: date, Amount: amount})
	}
	sort.Slice(summary.Daily, func(i, j int) bool {
		return summary.Daily[i].Date < summary.Daily[j].Date
	})

	return summary
}

// saleDate buckets a record timestamp into its calendar day. Unparsable
// timestamps land in a shared "unknown" bucket rather than being dropped.
func saleDate(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return "unknown"
	}
	return t.Format("2006-01-02")
}
