// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v2"

	"github.com/nurctl/nurctl/internal/log"
)

// Formats lists the supported --output values.
var Formats = []string{"md", "json", "yaml"}

// ErrNoObjectWriter is returned when an s3:// destination is used without an
// object store.
var ErrNoObjectWriter = errors.New("no object store configured")

// Document is a report that can render itself as markdown. It is also
// marshaled as-is for json and yaml.
type Document interface {
	Markdown() string
}

// Render encodes doc in the requested format.
func Render(doc Document, format string) ([]byte, error) {
	switch format {
	case "", "md":
		return []byte(doc.Markdown()), nil
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal json: %w", err)
		}
		return append(b, '\n'), nil
	case "yaml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// ObjectWriter stores a payload in an object store.
type ObjectWriter interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Sink writes rendered reports to stdout, a file or an object store.
type Sink struct {
	Stdout  io.Writer
	Objects ObjectWriter
}

// ParseS3URL splits s3://bucket/key. ok is false for any other destination.
func ParseS3URL(dest string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(dest, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, true
}

// Write stores data at dest: "-" for stdout, s3://bucket/key, or a file path.
func (s Sink) Write(ctx context.Context, dest string, data []byte, format string) error {
	if dest == "" || dest == "-" {
		w := s.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}

	if bucket, key, ok := ParseS3URL(dest); ok {
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return fmt.Errorf("invalid s3 destination %q: want s3://bucket/key", dest)
		}
		if s.Objects == nil {
			return ErrNoObjectWriter
		}
		if err := s.Objects.PutObject(ctx, bucket, key, data, ContentType(format)); err != nil {
			return fmt.Errorf("failed to upload %s: %w", dest, err)
		}
		log.Infof("report uploaded to %s", dest)
		return nil
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	log.Infof("report written to %s", dest)
	return nil
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}
