package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashToken(t *testing.T) {
	t.Parallel()

	first := hashToken("some.refresh.token")
	second := hashToken("some.refresh.token")
	assert.Equal(t, first, second, "hashing must be deterministic for lookups")

	other := hashToken("another.refresh.token")
	assert.NotEqual(t, first, other)

	// base64(sha256) is fixed-width regardless of token length.
	assert.Len(t, first, 44)
	assert.NotContains(t, first, "some.refresh.token")
}
