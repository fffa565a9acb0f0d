// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pornjaa/stock-jare/ledger"
)

const testSinkURL = "https://script.google.com/macros/s/test/exec"

func newTestService(t *testing.T, rt roundTripFunc) (*Service, *ledger.Store) {
	t.Helper()
	store, err := ledger.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.SetSinkURL(testSinkURL))

	rec := NewReconciler(fakeTransport(t, rt), nil)
	return NewService(store, rec, nil), store
}

func TestSyncCycleNoSinkURL(t *testing.T) {
	store, err := ledger.Open(":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(store, NewReconciler(fakeTransport(t, nil), nil), nil)
	_, err = svc.SyncCycle(context.Background())
	require.ErrorIs(t, err, ErrNoSinkURL)
}

func TestSyncCycleNothingToSync(t *testing.T) {
	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		if r.Method == http.MethodGet {
			return jsonResponse(http.StatusOK, `{"sales":[],"iceDebt":[],"customerDebt":[]}`), nil
		}
		t.Fatal("no push expected")
		return nil, nil
	})

	sale := sale("s1", true)
	require.NoError(t, store.Save([]ledger.SaleEntry{sale}, nil, nil))

	_, err := svc.SyncCycle(context.Background())
	require.ErrorIs(t, err, ErrNothingToSync)
}

func TestSyncCycleOptimisticConfirm(t *testing.T) {
	var pushed Payload
	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		if r.Method == http.MethodGet {
			// Remote is unreachable; pull failures are swallowed.
			return nil, errors.New("offline sink")
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
		return jsonResponse(http.StatusOK, ``), nil
	})

	pendingSale, _ := ledger.NewSaleEntry(ledger.CategoryBeer, "Leo", 2, 120)
	syncedSale := sale("old", true)
	chain, _ := ledger.RecordAdjustment(nil, 8, 0, "", nil)
	debt, _ := ledger.NewCustomerDebtEntry("Somchai", "beer crate", 1, 350)
	require.NoError(t, store.Save(
		[]ledger.SaleEntry{pendingSale, syncedSale},
		chain,
		[]ledger.CustomerDebtEntry{debt},
	))

	report, err := svc.SyncCycle(context.Background())
	require.NoError(t, err)
	require.False(t, report.RemoteSeen)
	require.Equal(t, 1, report.Sales)
	require.Equal(t, 1, report.IceDebt)
	require.Equal(t, 1, report.CustomerDebt)

	// Only the pending subset went over the wire.
	require.Len(t, pushed.Sales, 1)
	require.Equal(t, pendingSale.ID, pushed.Sales[0].ID)

	// Everything that was pending at call-start is now confirmed synced.
	sales, gotChain, debts, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 0, ledger.UnsyncedCount(sales, gotChain, debts))
}

func TestSyncCyclePushFailureLeavesFlagsUntouched(t *testing.T) {
	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		if r.Method == http.MethodGet {
			return nil, errors.New("offline sink")
		}
		return nil, errors.New("connection reset")
	})

	pendingSale, _ := ledger.NewSaleEntry(ledger.CategoryBeer, "Leo", 2, 120)
	require.NoError(t, store.Save([]ledger.SaleEntry{pendingSale}, nil, nil))

	_, err := svc.SyncCycle(context.Background())
	require.Error(t, err)

	sales, chain, debts, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, ledger.UnsyncedCount(sales, chain, debts), "failed push must leave records pending for retry")
}

func TestSyncCycleMergesRemoteBeforePush(t *testing.T) {
	remote := Snapshot{Sales: []ledger.SaleEntry{sale("remote1", false)}}
	remoteBody, err := json.Marshal(remote)
	require.NoError(t, err)

	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		if r.Method == http.MethodGet {
			return jsonResponse(http.StatusOK, string(remoteBody)), nil
		}
		return jsonResponse(http.StatusOK, ``), nil
	})

	pendingSale, _ := ledger.NewSaleEntry(ledger.CategoryIce, "crushed ice", 1, 20)
	require.NoError(t, store.Save([]ledger.SaleEntry{pendingSale}, nil, nil))

	report, err := svc.SyncCycle(context.Background())
	require.NoError(t, err)
	require.True(t, report.RemoteSeen)

	sales, _, _, err := store.Load()
	require.NoError(t, err)
	require.Len(t, sales, 2)
	for _, s := range sales {
		require.True(t, s.Synced)
	}
}

func TestRefreshPersistsMergedSnapshot(t *testing.T) {
	remote := Snapshot{Sales: []ledger.SaleEntry{sale("remote1", false)}}
	remoteBody, err := json.Marshal(remote)
	require.NoError(t, err)

	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method, "refresh must never push")
		return jsonResponse(http.StatusOK, string(remoteBody)), nil
	})

	require.NoError(t, svc.Refresh(context.Background()))

	sales, _, _, err := store.Load()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.True(t, sales[0].Synced)
}

func TestRefreshPullFailureLeavesStoreUntouched(t *testing.T) {
	svc, store := newTestService(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("offline sink")
	})

	pendingSale, _ := ledger.NewSaleEntry(ledger.CategoryBeer, "Chang", 1, 55)
	require.NoError(t, store.Save([]ledger.SaleEntry{pendingSale}, nil, nil))

	require.NoError(t, svc.Refresh(context.Background()))

	sales, _, _, err := store.Load()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.False(t, sales[0].Synced)
}
