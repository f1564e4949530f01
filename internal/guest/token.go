// Package guest implements the stateless session credential handed to guests
// after a booking-number login. The token is signed, not encrypted: it proves
// which booking IDs a holder may act on and until when, while the IDs
// themselves are readable by anyone holding the token.
package guest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// TokenService issues and verifies guest session tokens. Verification is pure
// signature recomputation; no server-side session record exists.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service with the given signing secret.
// An empty secret is a configuration fault and fails construction.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("guest token secret must not be empty")
	}
	s := &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a token authorizing the given booking IDs until expiresAt.
// Wire format, before the outer base64: "<ids-csv>|<unix-expiry>|<base64(mac)>"
// where the MAC is HMAC-SHA256 over "<ids-csv>|<unix-expiry>".
func (s *TokenService) Issue(bookingIDs []int64, expiresAt time.Time) (string, error) {
	if len(bookingIDs) == 0 {
		return "", errors.New("token requires at least one booking id")
	}

	parts := make([]string, len(bookingIDs))
	for i, id := range bookingIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	payload := strings.Join(parts, ",") + "|" + strconv.FormatInt(expiresAt.Unix(), 10)

	mac := s.sign(payload)
	token := payload + "|" + base64.StdEncoding.EncodeToString(mac)

	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// Validate checks a token and returns the booking IDs it authorizes, in the
// order they were issued. Every failure mode yields the same (false, nil)
// result so a caller cannot distinguish a tampered token from an expired one.
//
// The expiry check runs after all parsing on purpose: a well-formed but
// expired token must fail on its expiry, not on some earlier shortcut.
func (s *TokenService) Validate(token string) (bool, []int64) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false, nil
	}

	fields := strings.Split(string(raw), "|")
	if len(fields) != 3 {
		return false, nil
	}
	idsCSV, expiryStr, macB64 := fields[0], fields[1], fields[2]

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return false, nil
	}

	idParts := strings.Split(idsCSV, ",")
	if len(idParts) == 0 || idsCSV == "" {
		return false, nil
	}
	ids := make([]int64, len(idParts))
	for i, p := range idParts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return false, nil
		}
		ids[i] = id
	}

	mac, err := base64.StdEncoding.DecodeString(macB64)
	if err != nil {
		return false, nil
	}
	expected := s.sign(idsCSV + "|" + expiryStr)
	if !hmac.Equal(mac, expected) {
		return false, nil
	}

	if s.now().Unix() > expiry {
		return false, nil
	}

	return true, ids
}

func (s *TokenService) sign(payload string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(payload))
	return h.Sum(nil)
}
