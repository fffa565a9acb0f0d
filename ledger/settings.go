// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrBadSinkURL rejects endpoint URLs that do not look like a deployed web
// app execution URL.
var ErrBadSinkURL = errors.New("sink URL must be an http(s) web app URL ending in /exec")

// ValidateSinkURL applies the loose shape check for the remote endpoint:
// it must parse as an http(s) URL and end with the /exec path segment a
// deployed Apps Script web app exposes.
func ValidateSinkURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ErrBadSinkURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrBadSinkURL
	}
	if !strings.HasSuffix(u.Path, "/exec") {
		return ErrBadSinkURL
	}
	return nil
}

// SinkURL returns the configured remote endpoint, or "" when none is set.
func (s *Store) SinkURL() (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_blob WHERE key = ?`, keySinkURL).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read sink URL: %w", err)
	}
	return value, nil
}

// SetSinkURL validates and persists the remote endpoint URL.
func (s *Store) SetSinkURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if err := ValidateSinkURL(raw); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`
		INSERT INTO kv_blob (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, keySinkURL, raw); err != nil {
		return fmt.Errorf("failed to persist sink URL: %w", err)
	}
	return nil
}
