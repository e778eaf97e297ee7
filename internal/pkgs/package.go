// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgs

import (
	"regexp"
	"strings"
)

// nameRegex splits a full derivation name into its base name and version. The
// name group is lazy so the shortest prefix followed by "-<digit>" or
// "-unstable-" wins, e.g. "python3.11-requests-2.31.0" splits into
// "python3.11-requests" and "2.31.0".
var nameRegex = regexp.MustCompile(`^(?P<name>.*?)-(?P<version>(?:unstable-)?[0-9][0-9a-zA-Z.-]*)$`)

// Package is either an IdentifiedPackage or an OpaquePackage.
type Package interface {
	// Key returns the identity used to match packages between snapshots.
	Key() string
	isPackage()
}

// IdentifiedPackage is a package whose full name split into name and version.
type IdentifiedPackage struct {
	Name        string
	Version     Version
	Description string
}

// OpaquePackage is a package whose full name could not be split.
type OpaquePackage struct {
	Raw string
}

func (IdentifiedPackage) isPackage() {}
func (OpaquePackage) isPackage()     {}

// Key implements Package.
func (p IdentifiedPackage) Key() string { return p.Name }

// Key implements Package.
func (p OpaquePackage) Key() string { return p.Raw }

// Identify builds a Package from a full derivation name such as "hello-2.12.1".
// An empty or blank description is treated as absent.
func Identify(fullName string, description string) Package {
	m := nameRegex.FindStringSubmatch(fullName)
	if m == nil {
		return OpaquePackage{Raw: fullName}
	}

	if strings.TrimSpace(description) == "" {
		description = ""
	}

	return IdentifiedPackage{
		Name:        m[nameRegex.SubexpIndex("name")],
		Version:     ParseVersion(m[nameRegex.SubexpIndex("version")]),
		Description: description,
	}
}

// VersionString renders the version part of p the way reports show it.
// Opaque packages have no version and render as "unparsable".
func VersionString(p Package) string {
	switch p := p.(type) {
	case IdentifiedPackage:
		return p.Version.String()
	case OpaquePackage:
		return unparsable
	default:
		return unparsable
	}
}
