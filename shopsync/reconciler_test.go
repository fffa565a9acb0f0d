// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pornjaa/stock-jare/ledger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func fakeTransport(t *testing.T, rt roundTripFunc) *Transport {
	t.Helper()
	tr := NewTransport(nil)
	tr.HTTP = &http.Client{Transport: rt}
	return tr
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestPushUnsyncedNothingToDo(t *testing.T) {
	tr := fakeTransport(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no network call expected for an empty payload")
		return nil, nil
	})
	rec := NewReconciler(tr, nil)

	err := rec.PushUnsynced(context.Background(), "https://sink/exec", Payload{})
	require.ErrorIs(t, err, ErrNothingToSync)
}

func TestPushUnsyncedSendsCombinedPayload(t *testing.T) {
	var got Payload
	var contentType string
	tr := fakeTransport(t, func(r *http.Request) (*http.Response, error) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		return jsonResponse(http.StatusOK, `ignored`), nil
	})
	rec := NewReconciler(tr, nil)

	payload := Payload{
		Sales:   []ledger.SaleEntry{sale("a1", false)},
		IceDebt: []ledger.IceDebtAdjustment{{ID: "i1", Delivered: 5, CurrentDebt: 5}},
	}
	require.NoError(t, rec.PushUnsynced(context.Background(), "https://sink/exec", payload))

	require.Equal(t, "text/plain", contentType)
	require.Len(t, got.Sales, 1)
	require.Len(t, got.IceDebt, 1)
	require.Empty(t, got.CustomerDebt)
}

func TestPushOpaqueResponseIsSuccess(t *testing.T) {
	// The transport is one-way: a garbage body or odd status from the sink
	// still counts as "the request left this machine".
	tr := fakeTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusFound, `<html>moved</html>`), nil
	})
	rec := NewReconciler(tr, nil)

	err := rec.PushUnsynced(context.Background(), "https://sink/exec",
		Payload{Sales: []ledger.SaleEntry{sale("a1", false)}})
	require.NoError(t, err)
	require.Equal(t, StateIdle, rec.State())
}

func TestPushTransportErrorSurfaces(t *testing.T) {
	tr := fakeTransport(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	rec := NewReconciler(tr, nil)

	err := rec.PushUnsynced(context.Background(), "https://sink/exec",
		Payload{Sales: []ledger.SaleEntry{sale("a1", false)}})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNothingToSync)
	require.Equal(t, StateFailed, rec.State())
}

func TestFetchRemoteSnapshotCacheBuster(t *testing.T) {
	var gotURL string
	tr := fakeTransport(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return jsonResponse(http.StatusOK, `{"sales":[],"iceDebt":[],"customerDebt":[]}`), nil
	})

	snapshot := tr.FetchRemoteSnapshot(context.Background(), "https://sink/exec")
	require.NotNil(t, snapshot)
	require.Contains(t, gotURL, "/exec?t=", "pull must carry a cache-defeating query parameter")
}

func TestFetchRemoteSnapshotFailuresReturnNil(t *testing.T) {
	cases := []struct {
		name string
		rt   roundTripFunc
	}{
		{"network error", func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("timeout")
		}},
		{"non-OK status", func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `{}`), nil
		}},
		{"malformed JSON", func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `<html>login please</html>`), nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := fakeTransport(t, tc.rt)
			require.Nil(t, tr.FetchRemoteSnapshot(context.Background(), "https://sink/exec"))
		})
	}
}

func TestMergeSnapshotNilLeavesLocalUntouched(t *testing.T) {
	rec := NewReconciler(fakeTransport(t, nil), nil)
	local := Snapshot{Sales: []ledger.SaleEntry{sale("a1", false)}}

	merged := rec.MergeSnapshot(nil, local)
	require.Equal(t, local, merged)
}
