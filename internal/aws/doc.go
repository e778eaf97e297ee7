// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK configuration and uploads reports to S3.
package aws
