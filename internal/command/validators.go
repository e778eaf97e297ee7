// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nurctl/nurctl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !output.ValidFormat(s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func ColorValidator(value any) error {
	var validColorFlagValues = []string{"auto", "always", "never"}
	s, _ := value.(string)
	if !slices.Contains(validColorFlagValues, s) {
		return fmt.Errorf("must be one of %v", validColorFlagValues)
	}
	return nil
}

// OutValidator rejects s3 destinations without an object key.
func OutValidator(value any) error {
	s, _ := value.(string)
	if bucket, key, ok := output.ParseS3URL(s); ok {
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return fmt.Errorf("want s3://bucket/key, got %q", s)
		}
	}
	return nil
}

// LimitValidator requires a positive commit count.
func LimitValidator(value any) error {
	n, _ := value.(int)
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
