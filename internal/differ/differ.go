// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/pkgs"
)

// ErrIdentityMismatch is returned when two packages filed under the same
// identity key cannot be compared. It means the sets were built incorrectly.
var ErrIdentityMismatch = errors.New("identity mismatch")

// compare is pkgs.Compare. Sets from pkgs.NewSet always file a package under
// its own name, so only tests make it report a mismatch.
var compare = pkgs.Compare

// Update is a package present in both snapshots that changed.
type Update struct {
	Old        pkgs.Package
	New        pkgs.Package
	Comparison pkgs.Comparison
}

// GroupDiff is the classification of one group present in both snapshots.
type GroupDiff struct {
	Added     []pkgs.Package
	Updated   []Update
	Removed   []pkgs.Package
	Unchanged int
	// Total is the number of packages in the new group.
	Total int
}

// SnapshotDiff is the result of comparing two package sets.
type SnapshotDiff struct {
	groups        map[string]*GroupDiff
	labels        []string
	AddedGroups   []string
	RemovedGroups []string
	// TotalGroups is the number of groups in the new snapshot.
	TotalGroups int
}

// Totals sums the per-group classifications.
type Totals struct {
	Added     int
	Updated   int
	Removed   int
	Unchanged int
	Total     int
}

// Diff compares the before and after package sets group by group. Groups are
// visited in label order and packages in key order, so the result does not
// depend on the order of the raw input.
func Diff(before, after *pkgs.Set) (*SnapshotDiff, error) {
	log.Debugf(">> Diff()")

	sd := &SnapshotDiff{
		groups:      make(map[string]*GroupDiff),
		TotalGroups: after.Len(),
	}

	for _, label := range before.Groups() {
		if after.Has(label) {
			sd.labels = append(sd.labels, label)
		} else {
			sd.RemovedGroups = append(sd.RemovedGroups, label)
		}
	}
	for _, label := range after.Groups() {
		if !before.Has(label) {
			sd.AddedGroups = append(sd.AddedGroups, label)
		}
	}
	log.Debugf("groups: shared=%d added=%d removed=%d", len(sd.labels), len(sd.AddedGroups), len(sd.RemovedGroups))

	for _, label := range sd.labels {
		og, _ := before.Group(label)
		ng, _ := after.Group(label)

		gd, err := diffGroup(label, og, ng)
		if err != nil {
			return nil, err
		}
		sd.groups[label] = gd
	}

	return sd, nil
}

// diffGroup classifies every key of a group present in both snapshots.
func diffGroup(label string, og, ng *pkgs.Group) (*GroupDiff, error) {
	gd := &GroupDiff{Total: ng.Len()}

	for _, key := range og.Keys() {
		op, _ := og.Get(key)
		np, ok := ng.Get(key)
		if !ok {
			gd.Removed = append(gd.Removed, op)
			continue
		}

		cmp, ok := compare(op, np)
		if !ok {
			return nil, fmt.Errorf("%w: group %s key %s", ErrIdentityMismatch, label, key)
		}
		if !cmp.Changed {
			gd.Unchanged++
			continue
		}
		gd.Updated = append(gd.Updated, Update{Old: op, New: np, Comparison: cmp})
	}

	for _, key := range ng.Keys() {
		if _, ok := og.Get(key); !ok {
			np, _ := ng.Get(key)
			gd.Added = append(gd.Added, np)
		}
	}

	log.Tracef("group %s: added=%d updated=%d removed=%d total=%d",
		label, len(gd.Added), len(gd.Updated), len(gd.Removed), gd.Total)

	return gd, nil
}

// Labels returns the labels of the groups present in both snapshots, sorted.
func (sd *SnapshotDiff) Labels() []string {
	return slices.Clone(sd.labels)
}

// Group returns the classification of a shared group.
func (sd *SnapshotDiff) Group(label string) (*GroupDiff, bool) {
	gd, ok := sd.groups[label]
	return gd, ok
}

// Totals sums the classifications of all shared groups.
func (sd *SnapshotDiff) Totals() Totals {
	var t Totals
	for _, gd := range sd.groups {
		t.Added += len(gd.Added)
		t.Updated += len(gd.Updated)
		t.Removed += len(gd.Removed)
		t.Unchanged += gd.Unchanged
		t.Total += gd.Total
	}
	return t
}

// Empty reports whether nothing changed between the snapshots.
func (sd *SnapshotDiff) Empty() bool {
	t := sd.Totals()
	return t.Added == 0 && t.Updated == 0 && t.Removed == 0 &&
		len(sd.AddedGroups) == 0 && len(sd.RemovedGroups) == 0
}
