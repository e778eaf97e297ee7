// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/nurctl/nurctl/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename. Data holds the
// decompressed payload.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

const suffix = ".zst"

var (
	codecOnce sync.Once
	codecErr  error
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
)

// codec lazily builds the shared zstd encoder and decoder. Both are safe for
// concurrent EncodeAll/DecodeAll calls.
func codec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil)
		if codecErr != nil {
			codecErr = fmt.Errorf("failed to create zstd encoder: %w", codecErr)
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if codecErr != nil {
			codecErr = fmt.Errorf("failed to create zstd decoder: %w", codecErr)
		}
	})
	return encoder, decoder, codecErr
}

// Dir resolves the base cache directory.
// Precedence:
//  1. NURCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/nurctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("NURCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "nurctl"), true
	}
	return "", false
}

// Enabled returns true unless NURCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("NURCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("cache dir: path=%s", base)
	return base, true, nil
}

// EntryPath returns the absolute path where a cache entry would live given
// subdirectory components and the clear-text key. It also returns true if a
// file currently exists at that path.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(append([]string{base}, append(subdirs, encodeKey(clearKey)+suffix)...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		// A file may vanish between listing and stat when two runs share a cache.
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read attempts to read and decompress a cached entry. A corrupt entry is
// treated as a miss.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}

	_, dec, err := codec()
	if err != nil {
		log.WithError(err).Warn("cache read skipped")
		return nil, false
	}
	data, err := dec.DecodeAll(b, nil)
	if err != nil {
		log.WithError(err).Warnf("ignoring corrupt cache entry %s", p)
		return nil, false
	}

	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       data,
	}, true
}

// Write compresses and stores data for the given key beneath subdirs. Creates
// directories as needed.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}

	enc, _, err := codec()
	if err != nil {
		return err
	}

	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey)+suffix)
	compressed := enc.EncodeAll(data, make([]byte, 0, len(data)/2)) //nolint:mnd
	if err := os.WriteFile(p, compressed, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s size=%d stored=%d", clearKey, len(data), len(compressed))
	return nil
}

// blake2b-256 of the clear-text key, hex encoded.
func encodeKey(input string) string {
	sum := blake2b.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
