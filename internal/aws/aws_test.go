// Copyright (c) 2026 The nurctl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's ~/.aws out of the tests.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
}

func TestOptions(t *testing.T) {
	var o options
	for _, opt := range []Option{
		WithProfile("nur"),
		WithRegion("eu-west-1"),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
	} {
		opt(&o)
	}

	assert.Equal(t, "nur", o.profile)
	assert.Equal(t, "eu-west-1", o.region)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

func TestLoadAWSConfig_WithRegion(t *testing.T) {
	isolate(t)

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestWithEndpoint(t *testing.T) {
	var o s3v2.Options
	WithEndpoint("")(&o)
	assert.Nil(t, o.BaseEndpoint)
	assert.False(t, o.UsePathStyle)

	WithEndpoint("http://localhost:9000")(&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}

func TestNewS3(t *testing.T) {
	isolate(t)

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.IsType(t, &s3v2.Client{}, NewS3(cfg, WithEndpoint("http://localhost:9000")))
}

type fakePutter struct {
	input *s3v2.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3v2.PutObjectOutput{}, nil
}

func TestUploader_PutObject(t *testing.T) {
	fp := &fakePutter{}
	u := NewUploader(fp)

	err := u.PutObject(context.Background(), "reports", "nur/report.md", []byte("## report\n"), "text/markdown; charset=utf-8")
	require.NoError(t, err)

	assert.Equal(t, "reports", awsv2.ToString(fp.input.Bucket))
	assert.Equal(t, "nur/report.md", awsv2.ToString(fp.input.Key))
	assert.Equal(t, "text/markdown; charset=utf-8", awsv2.ToString(fp.input.ContentType))
	assert.Equal(t, int64(10), awsv2.ToInt64(fp.input.ContentLength))
	assert.Equal(t, []byte("## report\n"), fp.body)

	fp.err = errors.New("AccessDenied")
	assert.EqualError(t, u.PutObject(context.Background(), "b", "k", nil, "application/json"), "AccessDenied")
}
