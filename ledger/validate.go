// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"errors"
	"strings"
)

// Validation sentinels. These are reported to the caller before any record
// is constructed; a rejected input never leaves a partial record behind.
var (
	ErrUnknownCategory     = errors.New("unknown product category")
	ErrEmptyProductName    = errors.New("product name must not be empty")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
	ErrEmptyCustomerName   = errors.New("customer name must not be empty")
	ErrEmptyItemName       = errors.New("item name must not be empty")
	ErrNegativeQuantity    = errors.New("quantity must not be negative")
	ErrNegativeAmount      = errors.New("amount must not be negative")
)

// ValidateSale checks a sale entry's inputs and returns the trimmed product
// name.
func ValidateSale(category Category, productName string, quantity float64) (string, error) {
	if !ValidCategory(category) {
		return "", ErrUnknownCategory
	}
	name := strings.TrimSpace(productName)
	if name == "" {
		return "", ErrEmptyProductName
	}
	if !(quantity > 0) {
		return "", ErrNonPositiveQuantity
	}
	return name, nil
}

// ValidateCustomerDebt checks a customer debt entry's inputs and returns the
// trimmed customer and item names.
func ValidateCustomerDebt(customerName, itemName string, quantity, amount float64) (customer, item string, err error) {
	customer = strings.TrimSpace(customerName)
	if customer == "" {
		return "", "", ErrEmptyCustomerName
	}
	item = strings.TrimSpace(itemName)
	if item == "" {
		return "", "", ErrEmptyItemName
	}
	if quantity < 0 {
		return "", "", ErrNegativeQuantity
	}
	if amount < 0 {
		return "", "", ErrNegativeAmount
	}
	return customer, item, nil
}
