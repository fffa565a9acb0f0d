// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

// Record is implemented by the three ledger record kinds. MarkSynced must
// return a copy; merge never mutates its inputs.
type Record[T any] interface {
	RecordID() string
	IsSynced() bool
	MarkSynced() T
}

// Merge combines one local collection with the corresponding remote
// collection under local-unsynced-precedence:
//
//   - local unsynced records are kept as-is and always win over a remote
//     record sharing their id (a pending local edit must not be clobbered by
//     a stale remote copy, e.g. when a push landed remotely but the local
//     synced-flag update was lost);
//   - every surviving remote record is forced synced, since it exists in the
//     sink by definition;
//   - local already-synced records are dropped in favor of the remote state,
//     which is the source of truth for anything confirmed sent.
//
// The result is unsynced ++ (remote \ unsynced-ids), preserving each side's
// order.
func Merge[T Record[T]](local, remote []T) []T {
	unsyncedIDs := make(map[string]struct{})
	merged := make([]T, 0, len(local)+len(remote))

	for _, r := range local {
		if !r.IsSynced() {
			unsyncedIDs[r.RecordID()] = struct{}{}
			merged = append(merged, r)
		}
	}
	for _, r := range remote {
		if _, pending := unsyncedIDs[r.RecordID()]; !pending {
			merged = append(merged, r.MarkSynced())
		}
	}
	return merged
}

// FilterUnsynced returns the pending subset of a collection.
func FilterUnsynced[T Record[T]](records []T) []T {
	var pending []T
	for _, r := range records {
		if !r.IsSynced() {
			pending = append(pending, r)
		}
	}
	return pending
}

// ConfirmSynced marks every record whose id is in pushed as synced and
// returns the new collection. Records appended after the push snapshot was
// taken are not in pushed and stay pending.
func ConfirmSynced[T Record[T]](records []T, pushed map[string]struct{}) []T {
	out := make([]T, len(records))
	for i, r := range records {
		if _, ok := pushed[r.RecordID()]; ok {
			out[i] = r.MarkSynced()
		} else {
			out[i] = r
		}
	}
	return out
}

// idSet collects the ids of a collection, used as the confirmation set for
// an optimistic push.
func idSet[T Record[T]](records []T) map[string]struct{} {
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.RecordID()] = struct{}{}
	}
	return ids
}
