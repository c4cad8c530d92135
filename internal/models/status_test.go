package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/apperrors"
)

func TestParseStatus(t *testing.T) {
	for _, value := range []string{"pending", "contacted", "approved", "rejected"} {
		status, err := ParseStatus(value)
		require.NoError(t, err)
		assert.Equal(t, SubmissionStatus(value), status)
	}

	for _, value := range []string{"", "Approved", "archived", "done"} {
		_, err := ParseStatus(value)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus, value)
	}
}

func TestPlatformIsValid(t *testing.T) {
	assert.True(t, PlatformBoth.IsValid())
	assert.False(t, Platform("Bolt").IsValid())
}
