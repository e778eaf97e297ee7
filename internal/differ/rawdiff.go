// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/nurctl/nurctl/internal/log"
)

// RawDiff writes a structural diff of two raw snapshot documents to w. When
// path is not empty only that subtree of each document is compared, e.g.
// "packages" for flake show output. It returns true when the documents differ.
func RawDiff(before, after []byte, path string, coloring bool, w io.Writer) (bool, error) {
	log.Debugf(">> RawDiff()")

	if len(before) == 0 || len(after) == 0 {
		return false, nil
	}
	log.Debugf("len(docs): %d %d", len(before), len(after))

	left, err := subtree(before, path)
	if err != nil {
		return false, fmt.Errorf("old document: %w", err)
	}
	right, err := subtree(after, path)
	if err != nil {
		return false, fmt.Errorf("new document: %w", err)
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The snapshots are identical.")
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return false, err
	}

	fmt.Fprintln(w, diffString)
	return true, nil
}

// subtree returns the raw JSON object found at path, or the whole document
// when path is empty.
func subtree(doc []byte, path string) ([]byte, error) {
	if path == "" {
		return doc, nil
	}

	r := gjson.GetBytes(doc, path)
	if !r.Exists() {
		return nil, fmt.Errorf("no %q object found", path)
	}
	if !r.IsObject() {
		return nil, fmt.Errorf("%q is not an object", path)
	}
	return []byte(r.Raw), nil
}
