// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvault/skillvault-core/httperr"
)

func TestNewS3Store_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := NewS3Store(context.Background(), S3Config{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name is required")
}

func TestIsNoSuchKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"NoSuchKey API error", &types.NoSuchKey{}, true},
		{"NotFound code", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"other API error", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isNoSuchKey(tt.err))
		})
	}
}

func TestTransportError_CarriesStatusCode(t *testing.T) {
	t.Parallel()

	cause := &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{
				Response: &http.Response{StatusCode: http.StatusServiceUnavailable},
			},
			Err: errors.New("service unavailable"),
		},
	}

	err := transportError("getting", "skills/a/1.0.0/a.skill", cause)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, httperr.Code(err))
	assert.Contains(t, err.Error(), "skills/a/1.0.0/a.skill")
}

func TestTransportError_PlainFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := transportError("putting", "key", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, httperr.Code(err))
}
