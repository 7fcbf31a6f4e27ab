package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateBasedTokenRoundTrip(t *testing.T) {
	cursor := time.Date(2025, 3, 10, 14, 30, 12, 345678000, time.UTC)

	token := EncodeDateBasedToken(cursor)
	decoded, err := DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, cursor.Equal(decoded))
}

func TestDecodeDateBasedToken_InvalidBase64(t *testing.T) {
	_, err := DecodeDateBasedToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeDateBasedToken_InvalidDate(t *testing.T) {
	_, err := DecodeDateBasedToken("bm90LWEtZGF0ZQ==") // "not-a-date"
	assert.Error(t, err)
}
