// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Transport carries the two HTTP legs of a sync cycle. The remote endpoint
// is a loosely-coupled spreadsheet web app: reads may fail routinely and
// writes are one-way.
type Transport struct {
	HTTP   *http.Client
	logger *slog.Logger
}

// NewTransport creates a transport with a bounded request timeout.
func NewTransport(logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// FetchRemoteSnapshot pulls the full remote state. A cache-defeating query
// parameter is appended so stale intermediary caches are bypassed.
//
// Any failure -- network error, non-OK status, malformed JSON -- returns nil:
// absence of remote data must never block local operation, so pull problems
// are logged and swallowed rather than surfaced.
func (t *Transport) FetchRemoteSnapshot(ctx context.Context, remoteURL string) *Snapshot {
	sep := "?"
	if strings.ContainsRune(remoteURL, '?') {
		sep = "&"
	}
	u := remoteURL + sep + "t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		t.logger.Warn("remote snapshot request build failed", "error", err)
		return nil
	}

	resp, err := t.HTTP.Do(req)
	if err != nil {
		t.logger.Warn("remote snapshot fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Warn("remote snapshot fetch returned non-OK status", "status", resp.StatusCode)
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		t.logger.Warn("remote snapshot is not parsable", "error", err)
		return nil
	}
	return &snapshot
}

// Push sends the combined payload to the remote sink.
//
// The transport is deliberately one-way: the body is posted as text/plain
// (the sink webhook accepts no other content type without preflight) and the
// response is discarded, status included. We cannot distinguish "the sink
// accepted the write" from "the request left this machine"; only a transport
// error is reported, and the caller treats anything else as optimistic
// success.
func (t *Transport) Push(ctx context.Context, remoteURL string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, remoteURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}
