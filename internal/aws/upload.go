// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"bytes"
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"

	"github.com/nurctl/nurctl/internal/log"
)

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Uploader stores reports in S3.
type Uploader struct {
	client PutObjectAPI
}

// NewUploader wraps client.
func NewUploader(client PutObjectAPI) *Uploader {
	return &Uploader{client: client}
}

// NewS3Uploader loads the AWS config and returns an Uploader backed by a real
// S3 client. endpoint may be empty.
func NewS3Uploader(ctx context.Context, endpoint string, opts ...Option) (*Uploader, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewUploader(NewS3(cfg, WithEndpoint(endpoint))), nil
}

// PutObject uploads body to bucket/key.
func (u *Uploader) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	log.Debugf("s3 put: bucket=%s key=%s size=%s", bucket, key, humanize.Bytes(uint64(len(body))))

	_, err := u.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(bucket),
		Key:           awsv2.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: awsv2.Int64(int64(len(body))),
		ContentType:   awsv2.String(contentType),
	})
	return err
}
