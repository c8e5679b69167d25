// SPDX-FileCopyrightText: Copyright 2026 Skillvault Authors
// SPDX-License-Identifier: Apache-2.0

package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCode(t *testing.T) {
	t.Parallel()

	base := errors.New("bucket unreachable")
	err := WithCode(base, http.StatusBadGateway)

	require.Error(t, err)
	assert.Equal(t, "bucket unreachable", err.Error())
	assert.Equal(t, http.StatusBadGateway, Code(err))
	assert.ErrorIs(t, err, base)
}

func TestWithCode_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WithCode(nil, http.StatusInternalServerError))
}

func TestCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("getting object: %w", New("access denied", http.StatusForbidden))
	assert.Equal(t, http.StatusForbidden, Code(err))
}

func TestCode_Uncoded(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Code(errors.New("plain")))
	assert.Equal(t, http.StatusOK, Code(nil))
}
