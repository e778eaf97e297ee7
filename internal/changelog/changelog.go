// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package changelog

import (
	"regexp"
	"strings"
)

// Event is one classified change message. It is one of Added, Removed,
// Updated or Unparsable.
type Event interface {
	isEvent()
}

// Added records a package introduced with "init".
type Added struct {
	Name string
}

// Removed records a package removed with "drop".
type Removed struct {
	Name string
}

// Updated records a version change; Change holds "old -> new".
type Updated struct {
	Name   string
	Change string
}

// Unparsable holds a message that matched no known form.
type Unparsable struct {
	Raw string
}

func (Added) isEvent()      {}
func (Removed) isEvent()    {}
func (Updated) isEvent()    {}
func (Unparsable) isEvent() {}

// The pattern is anchored at the start only; PR numbers and other trailing
// text are allowed.
var messageRegex = regexp.MustCompile(
	`^(?:\[.+\] )?(?P<name>\S+): (?P<action>drop|init|(?:[A-Za-z0-9.\-]+ -> [A-Za-z0-9.\-]+))`)

var (
	nameIdx   = messageRegex.SubexpIndex("name")
	actionIdx = messageRegex.SubexpIndex("action")
)

// Parse classifies a single message. Surrounding whitespace is ignored. A
// message that does not match is returned verbatim as Unparsable.
func Parse(msg string) Event {
	m := messageRegex.FindStringSubmatch(strings.TrimSpace(msg))
	if m == nil {
		return Unparsable{Raw: msg}
	}

	name, action := m[nameIdx], m[actionIdx]
	switch action {
	case "init":
		return Added{Name: name}
	case "drop":
		return Removed{Name: name}
	default:
		return Updated{Name: name, Change: action}
	}
}

// ParseAll classifies every message, preserving order and duplicates.
func ParseAll(msgs []string) []Event {
	events := make([]Event, 0, len(msgs))
	for _, msg := range msgs {
		events = append(events, Parse(msg))
	}
	return events
}
