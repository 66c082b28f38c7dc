package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestSanitizeStripsScripts(t *testing.T) {
	out := Sanitize(`hi <script>alert("x")</script><b>there</b>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<b>there</b>")
}
