package guest

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)

	_, err = NewTokenService("   ")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	ids := []int64{42, 1, 99}
	token, err := s.Issue(ids, now.Add(time.Hour))
	require.NoError(t, err)

	ok, got := s.Validate(token)
	assert.True(t, ok)
	// Order of issue is preserved exactly.
	assert.Equal(t, []int64{42, 1, 99}, got)
}

func TestTokenSingleID(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	token, err := s.Issue([]int64{7}, now.Add(time.Hour))
	require.NoError(t, err)

	ok, got := s.Validate(token)
	assert.True(t, ok)
	assert.Equal(t, []int64{7}, got)
}

func TestIssue_NoIDs(t *testing.T) {
	s, err := NewTokenService("test-secret")
	require.NoError(t, err)

	_, err = s.Issue(nil, time.Now().Add(time.Hour))
	assert.Error(t, err)

	_, err = s.Issue([]int64{}, time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	token, err := s.Issue([]int64{42}, now.Add(-time.Second))
	require.NoError(t, err)

	ok, ids := s.Validate(token)
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestValidate_AtExactExpiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	// A token checked at its exact expiry second is still valid; only a later
	// clock rejects it.
	token, err := s.Issue([]int64{42}, now)
	require.NoError(t, err)

	ok, _ := s.Validate(token)
	assert.True(t, ok)

	later, err := NewTokenService("test-secret", WithClock(testClock(now.Add(time.Second))))
	require.NoError(t, err)

	ok, _ = later.Validate(token)
	assert.False(t, ok)
}

func TestValidate_TamperedPayload(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	token, err := s.Issue([]int64{42}, now.Add(time.Hour))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	// Swap the authorized booking ID and re-encode; the MAC no longer matches.
	tampered := strings.Replace(string(raw), "42|", "43|", 1)
	require.NotEqual(t, string(raw), tampered)

	ok, ids := s.Validate(base64.StdEncoding.EncodeToString([]byte(tampered)))
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestValidate_TamperedSignature(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewTokenService("test-secret", WithClock(testClock(now)))
	require.NoError(t, err)

	token, err := s.Issue([]int64{42}, now.Add(time.Hour))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	fields := strings.SplitN(string(raw), "|", 3)
	require.Len(t, fields, 3)

	// Flip one character inside the signature field, keeping it valid base64
	// so the failure comes from the MAC comparison, not the decode.
	mac := []byte(fields[2])
	if mac[0] == 'A' {
		mac[0] = 'B'
	} else {
		mac[0] = 'A'
	}
	tampered := fields[0] + "|" + fields[1] + "|" + string(mac)

	ok, ids := s.Validate(base64.StdEncoding.EncodeToString([]byte(tampered)))
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestValidate_WrongSecret(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenService("secret-one", WithClock(testClock(now)))
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-two", WithClock(testClock(now)))
	require.NoError(t, err)

	token, err := issuer.Issue([]int64{42}, now.Add(time.Hour))
	require.NoError(t, err)

	ok, ids := verifier.Validate(token)
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestValidate_Malformed(t *testing.T) {
	s, err := NewTokenService("test-secret")
	require.NoError(t, err)

	encode := func(raw string) string {
		return base64.StdEncoding.EncodeToString([]byte(raw))
	}

	testCases := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "!!!not-base64!!!"},
		{name: "empty", token: ""},
		{name: "too few fields", token: encode("42|1234567890")},
		{name: "too many fields", token: encode("42|1234567890|mac|extra")},
		{name: "non-numeric expiry", token: encode("42|soon|bWFj")},
		{name: "non-numeric id", token: encode("abc|1234567890|bWFj")},
		{name: "empty id list", token: encode("|1234567890|bWFj")},
		{name: "mac not base64", token: encode("42|1234567890|%%%")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, ids := s.Validate(tc.token)
			assert.False(t, ok)
			assert.Nil(t, ids)
		})
	}
}
