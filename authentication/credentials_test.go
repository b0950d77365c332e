package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndVerify(t *testing.T) {
	hashed, err := HashPassword("topSecret123")
	require.NoError(t, err)

	record := NewPasswordRecord(hashed)
	ok, err := record.Verify("topSecret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = record.Verify("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordRecordMemoizesLastMatch(t *testing.T) {
	hashed, err := HashPassword("s3cr3t")
	require.NoError(t, err)
	record := NewPasswordRecord(hashed)

	ok, err := record.Verify("s3cr3t")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, record.hasLastMatch)
	assert.Equal(t, "s3cr3t", record.lastMatched)

	// Second call should take the memoized short-circuit path and still match.
	ok, err = record.Verify("s3cr3t")
	require.NoError(t, err)
	assert.True(t, ok)
}
