// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/nurctl/nurctl/internal/changelog"
	"github.com/nurctl/nurctl/internal/log"
	"github.com/nurctl/nurctl/internal/pkgs"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "name" (key only), "name=value"
// (key + operator + target), "name=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// Record is the set of filterable fields of one candidate.
type Record map[string]string

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (empty key) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("NURCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		// parts[1] is the key, parts[2] the optional operator (may include
		// negation like "!") and parts[3] the optional target.
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// Match returns true if rec satisfies every filter. A filter naming a field
// rec does not have is reported and ignored. A bare key matches when the
// field is not empty.
func Match(rec Record, filters []Filter) bool {
	for _, filter := range filters {
		value, ok := rec[filter.Key]
		if !ok {
			log.Warnf("filter key not found: %s", filter.Key)
			continue
		}

		var result bool
		switch {
		case filter.Operand == "":
			result = (value != "") == !filter.Negate
		case isNumericOperand(filter.Operand):
			if num, err := strconv.ParseFloat(value, 64); err == nil {
				result = checkNumericOperand(num, filter)
				break
			}
			result = checkStringOperand(value, filter)
		default:
			result = checkStringOperand(value, filter)
		}

		if !result {
			return false
		}
	}
	return true
}

// FilterSnapshot keeps the entries of raw that match spec. Each entry is
// matched on its arch, attr, name, version and description. The two
// snapshots of a diff are filtered independently, so a version filter can
// turn an update into an addition or a removal.
func FilterSnapshot(raw pkgs.RawSnapshot, spec string) pkgs.RawSnapshot {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return raw
	}

	out := make(pkgs.RawSnapshot, len(raw))
	for arch, entries := range raw {
		kept := []pkgs.RawEntry{}
		for _, e := range entries {
			if Match(packageRecord(arch, e), filters) {
				kept = append(kept, e)
			}
		}
		log.Tracef("filter %s: kept %d of %d", arch, len(kept), len(entries))
		out[arch] = kept
	}
	return out
}

func packageRecord(arch string, e pkgs.RawEntry) Record {
	p := pkgs.Identify(e.Name, e.Description)
	return Record{
		"arch":        arch,
		"attr":        e.Attr,
		"name":        p.Key(),
		"version":     pkgs.VersionString(p),
		"description": e.Description,
	}
}

// FilterEvents keeps the change-log events that match spec. Events are
// matched on name, action (init, drop, update or unparsable), change and the
// raw subject of unparsable events.
func FilterEvents(events []changelog.Event, spec string) []changelog.Event {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return events
	}

	kept := []changelog.Event{}
	for _, e := range events {
		if Match(eventRecord(e), filters) {
			kept = append(kept, e)
		}
	}
	return kept
}

func eventRecord(e changelog.Event) Record {
	rec := Record{"name": "", "action": "", "change": "", "raw": ""}
	switch e := e.(type) {
	case changelog.Added:
		rec["name"], rec["action"] = e.Name, "init"
	case changelog.Removed:
		rec["name"], rec["action"] = e.Name, "drop"
	case changelog.Updated:
		rec["name"], rec["action"], rec["change"] = e.Name, "update", e.Change
	case changelog.Unparsable:
		rec["action"], rec["raw"] = "unparsable", e.Raw
	}
	return rec
}

func isNumericOperand(operand string) bool {
	return operand == "<" || operand == ">"
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. A target that is not a number never matches.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "<":
		return value < tgt == !filter.Negate
	case ">":
		return value > tgt == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
