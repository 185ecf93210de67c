package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	sentinels := []error{
		ErrorNotFound,
		ErrDuplicateEmail,
		ErrorInternal,
		ErrorUnauthorized,
		ErrorValidation,
		ErrInvalidCredentials,
		ErrStoreUnavailable,
		ErrInvalidToken,
		ErrTokenExpired,
	}

	for _, s := range sentinels {
		wrapped := fmt.Errorf("ctx: %w", s)
		assert.True(t, errors.Is(wrapped, s), "wrapped %q must match", s)
	}
}

func TestSentinels_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidToken, ErrTokenExpired))
	assert.False(t, errors.Is(ErrorUnauthorized, ErrInvalidCredentials))
	assert.False(t, errors.Is(ErrDuplicateEmail, ErrorValidation))
}
