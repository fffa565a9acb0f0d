// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Pornjaa/stock-jare/ledger"
	"github.com/Pornjaa/stock-jare/shopsync"
)

func newTestServer(t *testing.T) (*httptest.Server, *MemStore) {
	t.Helper()
	store := NewMemStore()
	handlers := NewHandlers(store, prometheus.NewRegistry(), nil)
	srv := httptest.NewServer(handlers.Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func pushPayload(t *testing.T, url string, payload shopsync.Payload) AppendResponse {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	// Clients post with text/plain, the way the webhook contract demands.
	resp, err := http.Post(url, "text/plain", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out AppendResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func fetchSnapshot(t *testing.T, url string) shopsync.Snapshot {
	t.Helper()
	resp, err := http.Get(url + "?t=12345")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot shopsync.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	return snapshot
}

func testPayload() shopsync.Payload {
	return shopsync.Payload{
		Sales: []ledger.SaleEntry{{
			ID: "s1", Timestamp: "2025-03-01T09:00:00Z",
			Category: ledger.CategoryBeer, ProductName: "Leo", Quantity: 2, TotalPrice: 120,
		}},
		IceDebt: []ledger.IceDebtAdjustment{{
			ID: "i1", Timestamp: "2025-03-01T09:05:00Z",
			PreviousDebt: 0, Delivered: 10, Collected: 0, CurrentDebt: 10,
		}},
		CustomerDebt: []ledger.CustomerDebtEntry{{
			ID: "d1", Timestamp: "2025-03-01T09:10:00Z",
			CustomerName: "Somchai", ItemName: "beer crate", Quantity: 1, Amount: 350,
		}},
	}
}

func TestAppendAndSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)

	out := pushPayload(t, srv.URL+"/", testPayload())
	require.Equal(t, 3, out.Appended)
	require.Equal(t, 0, out.Skipped)

	snapshot := fetchSnapshot(t, srv.URL+"/")
	require.Len(t, snapshot.Sales, 1)
	require.Len(t, snapshot.IceDebt, 1)
	require.Len(t, snapshot.CustomerDebt, 1)
	require.Equal(t, "s1", snapshot.Sales[0].ID)
}

func TestAppendDeduplicatesByID(t *testing.T) {
	srv, _ := newTestServer(t)

	pushPayload(t, srv.URL+"/", testPayload())
	// A client retry after an ambiguous push failure resends the same set.
	out := pushPayload(t, srv.URL+"/", testPayload())
	require.Equal(t, 0, out.Appended)
	require.Equal(t, 3, out.Skipped)

	snapshot := fetchSnapshot(t, srv.URL+"/")
	require.Len(t, snapshot.Sales, 1, "retries must not create duplicate rows")
}

func TestAppendToleratesMissingKinds(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/", "text/plain", strings.NewReader(`{"sales":[{"id":"only","timestamp":"t","category":"ice","productName":"x","quantity":1,"totalPrice":5}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAppendRejectsGarbage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/", "text/plain", strings.NewReader(`not json`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecAliasRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	pushPayload(t, srv.URL+"/exec", testPayload())
	snapshot := fetchSnapshot(t, srv.URL+"/exec")
	require.Len(t, snapshot.Sales, 1)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMemStoreSnapshotMostRecentFirst(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.AppendRows(ctx, shopsync.Payload{Sales: []ledger.SaleEntry{{ID: "first"}}})
	require.NoError(t, err)
	_, err = store.AppendRows(ctx, shopsync.Payload{Sales: []ledger.SaleEntry{{ID: "second"}}})
	require.NoError(t, err)

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, []string{snapshot.Sales[0].ID, snapshot.Sales[1].ID})
}
