// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgs

import "fmt"

// unparsable is the marker used in change text and listings for packages
// whose name could not be split.
const unparsable = "unparsable"

// Comparison is the outcome of comparing two packages with the same identity.
type Comparison struct {
	// Changed is false when the packages are equivalent.
	Changed bool
	// Text is a one-line summary such as "hello: 2.12 -> 2.12.1". Empty when
	// nothing changed.
	Text string
	// Detail is nil for unchanged packages and for changes that cross the
	// identified/opaque boundary, where version and description cannot be
	// compared.
	Detail *ChangeDetail
}

// ChangeDetail records which parts of an identified package changed.
type ChangeDetail struct {
	Version     bool
	Description bool
}

// Compare compares the before and after states of a package. The second
// return value is false when the two packages do not share a name, in which
// case no comparison is possible.
func Compare(before, after Package) (Comparison, bool) {
	switch o := before.(type) {
	case OpaquePackage:
		switch n := after.(type) {
		case OpaquePackage:
			if o.Raw != n.Raw {
				return Comparison{}, false
			}
			return Comparison{}, true
		case IdentifiedPackage:
			if o.Raw != n.Name {
				return Comparison{}, false
			}
			return Comparison{
				Changed: true,
				Text:    fmt.Sprintf("%s: %s -> %s", o.Raw, unparsable, n.Version),
			}, true
		}

	case IdentifiedPackage:
		switch n := after.(type) {
		case OpaquePackage:
			if o.Name != n.Raw {
				return Comparison{}, false
			}
			return Comparison{
				Changed: true,
				Text:    fmt.Sprintf("%s: %s -> %s", o.Name, o.Version, unparsable),
			}, true
		case IdentifiedPackage:
			if o.Name != n.Name {
				return Comparison{}, false
			}

			detail := ChangeDetail{
				Version:     !o.Version.Equal(n.Version),
				Description: o.Description != n.Description,
			}
			if !detail.Version && !detail.Description {
				return Comparison{}, true
			}

			text := fmt.Sprintf("%s: %s -> %s", o.Name, o.Version, n.Version)
			if detail.Description {
				text += ", description changed"
			}
			return Comparison{Changed: true, Text: text, Detail: &detail}, true
		}
	}

	return Comparison{}, false
}
