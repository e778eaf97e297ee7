// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// SortRows orders rows by a comma separated list of column headers. A "-"
// prefix sorts descending and a "!" prefix compares case sensitively. Columns
// holding integers on both sides compare numerically. Unknown columns are
// ignored.
func SortRows(headers []string, rows [][]string, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			col := slices.Index(headers, field)
			if col < 0 || col >= len(rows[one]) || col >= len(rows[two]) {
				continue
			}
			oneValue, twoValue := rows[one][col], rows[two][col]

			oneInt, oneErr := strconv.Atoi(oneValue)
			twoInt, twoErr := strconv.Atoi(twoValue)
			if oneErr == nil && twoErr == nil {
				if oneInt != twoInt {
					if ascending {
						return oneInt < twoInt
					}
					return oneInt > twoInt
				}
				continue
			}

			if !caseSensitive {
				oneValue = strings.ToLower(oneValue)
				twoValue = strings.ToLower(twoValue)
			}

			if oneValue != twoValue {
				if ascending {
					return oneValue < twoValue
				}
				return oneValue > twoValue
			}
		}
		return false
	})
}
