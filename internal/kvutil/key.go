package kvutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// encodedPrefix marks a token that was base64 encoded because it contained
// characters NATS does not accept in KV keys.
const encodedPrefix = "b64-"

// ErrEmptyToken is returned when a key token is empty.
var ErrEmptyToken = errors.New("empty key token")

// EncodeToken turns an arbitrary identifier into a single NATS KV key token.
//
// Tokens made only of ASCII letters, digits, '-', '_' and '=' are used as-is.
// Anything else, including activity names in non-Latin scripts and tokens that
// already start with the encoded prefix, is base64url encoded behind "b64-".
//
// Parameters:
//   - s: Identifier to encode
//
// Returns:
//   - string: Key token without '.' separators
//   - error: ErrEmptyToken if s is empty
//
// Example:
//
//	tok, _ := kvutil.EncodeToken("raid")   // "raid"
//	tok, _ = kvutil.EncodeToken("团本")     // "b64-5Zui5pys"
func EncodeToken(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyToken
	}
	if plainToken(s) && !strings.HasPrefix(s, encodedPrefix) {
		return s, nil
	}

	return encodedPrefix + base64.RawURLEncoding.EncodeToString([]byte(s)), nil
}

// DecodeToken reverses EncodeToken.
func DecodeToken(tok string) (string, error) {
	if tok == "" {
		return "", ErrEmptyToken
	}

	encoded, ok := strings.CutPrefix(tok, encodedPrefix)
	if !ok {
		return tok, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode key token %q: %w", tok, err)
	}

	return string(raw), nil
}

// JoinKey encodes each part with EncodeToken and joins them with '.'.
func JoinKey(parts ...string) (string, error) {
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		tok, err := EncodeToken(part)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, tok)
	}

	return strings.Join(tokens, "."), nil
}

func plainToken(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '=':
		default:
			return false
		}
	}

	return true
}
