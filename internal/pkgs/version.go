// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgs

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the layout of the date carried by unstable snapshot versions.
const dateLayout = "2006-01-02"

// versionRegex matches dotted numeric versions with an optional alphanumeric
// suffix and an optional unstable date, e.g. "1.2.3", "2.0rc5" or
// "0-unstable-2024-03-01".
var versionRegex = regexp.MustCompile(
	`^(?P<numbers>\d+(?:\.\d+)*)(?P<extra>[a-zA-Z0-9]+)?-?(?:unstable-(?P<date>\d{4}-\d{2}-\d{2}))?$`)

// Version is either a StructuredVersion or an OpaqueVersion.
type Version interface {
	// Equal reports structural equality. Versions of different kinds are never
	// equal.
	Equal(other Version) bool
	String() string
	isVersion()
}

// StructuredVersion is a version that followed the numeric grammar.
type StructuredVersion struct {
	Numbers []uint64
	// Extra is the suffix following the numbers (rc5, pre, ...). Empty when
	// absent.
	Extra string
	// Unstable is set when the version carried an -unstable-YYYY-MM-DD date.
	Unstable bool
	Date     time.Time
}

// OpaqueVersion keeps a version string that could not be parsed.
type OpaqueVersion struct {
	Raw string
}

func (StructuredVersion) isVersion() {}
func (OpaqueVersion) isVersion()     {}

// ParseVersion parses a raw version string. It never fails: anything that does
// not fit the structured grammar comes back as an OpaqueVersion holding s.
func ParseVersion(s string) Version {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return OpaqueVersion{Raw: s}
	}

	var v StructuredVersion
	for _, run := range strings.Split(m[versionRegex.SubexpIndex("numbers")], ".") {
		n, err := strconv.ParseUint(run, 10, 64)
		if err != nil {
			return OpaqueVersion{Raw: s}
		}
		v.Numbers = append(v.Numbers, n)
	}

	v.Extra = m[versionRegex.SubexpIndex("extra")]

	if date := m[versionRegex.SubexpIndex("date")]; date != "" {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return OpaqueVersion{Raw: s}
		}
		v.Unstable = true
		v.Date = t
	}

	return v
}

// Equal implements Version.
func (v StructuredVersion) Equal(other Version) bool {
	o, ok := other.(StructuredVersion)
	if !ok {
		return false
	}
	if !slices.Equal(v.Numbers, o.Numbers) || v.Extra != o.Extra || v.Unstable != o.Unstable {
		return false
	}
	return !v.Unstable || v.Date.Equal(o.Date)
}

// String renders the version so that ParseVersion(v.String()) equals v.
// Leading zeros in the original input are not preserved.
func (v StructuredVersion) String() string {
	parts := make([]string, len(v.Numbers))
	for i, n := range v.Numbers {
		parts[i] = strconv.FormatUint(n, 10)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(parts, "."))
	sb.WriteString(v.Extra)
	if v.Unstable {
		sb.WriteString("-unstable-")
		sb.WriteString(v.Date.Format(dateLayout))
	}
	return sb.String()
}

// Equal implements Version.
func (v OpaqueVersion) Equal(other Version) bool {
	o, ok := other.(OpaqueVersion)
	return ok && v.Raw == o.Raw
}

func (v OpaqueVersion) String() string {
	return v.Raw
}
