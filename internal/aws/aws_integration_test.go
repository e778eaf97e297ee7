// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_UploadReport uploads a report to a throwaway bucket using
// the ambient AWS credentials. NURCTL_S3_ENDPOINT selects an S3 compatible
// store instead of AWS.
func TestIntegration_UploadReport(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadAWSConfig(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)
	client := NewS3(cfg, WithEndpoint(os.Getenv("NURCTL_S3_ENDPOINT")))

	bucket := fmt.Sprintf("nurctl-test-%d", time.Now().UnixNano())
	_, err = client.CreateBucket(ctx, &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)})
	require.NoError(t, err)
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String("report.md")})
		_, _ = client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(bucket)})
	}()

	report := []byte("## nurctl report\n")
	require.NoError(t, NewUploader(client).PutObject(ctx, bucket, "report.md", report, "text/markdown; charset=utf-8"))

	got, err := client.GetObject(ctx, &s3v2.GetObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String("report.md")})
	require.NoError(t, err)
	defer got.Body.Close()

	body, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	assert.Equal(t, report, body)
	assert.Equal(t, "text/markdown; charset=utf-8", awsv2.ToString(got.ContentType))
}
