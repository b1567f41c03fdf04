package sigv4

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/private/protocol/rest"
)

// HashedPayload returns the lowercase hex SHA256 of the request body. The
// empty body hashes to EmptyStringSHA256.
func HashedPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// CanonicalQueryString encodes query parameters the way S3 expects them
// signed: keys sorted byte-wise, each key and value form-encoded (space as
// '+', uppercase percent hex), joined as k=v pairs with '&'. An empty map
// yields an empty string.
func CanonicalQueryString(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = url.QueryEscape(k) + "=" + url.QueryEscape(params[k])
	}
	return strings.Join(pairs, "&")
}

// CanonicalHeaders normalizes headers into the signed-header list and the
// canonical headers block. Names are lowercased and sorted, values have
// surrounding whitespace trimmed. The block has one "name:value\n" line per
// header, trailing newline included.
//
// Two input names that collide after lowercasing are rejected rather than
// silently merged; the caller cannot know which value would have been
// signed.
func CanonicalHeaders(headers map[string]string) (signedHeaders, canonicalHeaders string, err error) {
	lowered := make(map[string]string, len(headers))
	for name, value := range headers {
		ln := strings.ToLower(name)
		if _, dup := lowered[ln]; dup {
			return "", "", &AmbiguousHeaderError{Name: ln}
		}
		lowered[ln] = strings.TrimSpace(value)
	}

	names := make([]string, 0, len(lowered))
	for name := range lowered {
		names = append(names, name)
	}
	sort.Strings(names)

	var block strings.Builder
	for _, name := range names {
		block.WriteString(name)
		block.WriteByte(':')
		block.WriteString(lowered[name])
		block.WriteByte('\n')
	}

	return strings.Join(names, ";"), block.String(), nil
}

// CanonicalRequest serializes the request into the fixed 6-field form that
// gets hashed into the string to sign: method, canonical URI, canonical
// query string, canonical headers block, signed-header list, payload hash.
// The field order is fixed by the sigv4 specification; the server recomputes
// this exact string to verify the signature.
func CanonicalRequest(method, path string, headers map[string]string, canonicalQuery, hashedPayload string) (creq, signedHeaders string, err error) {
	uri := EscapePath(path)

	signedHeaders, canonicalHeaders, err := CanonicalHeaders(headers)
	if err != nil {
		return "", "", err
	}

	creq = strings.Join([]string{
		method,
		uri,
		canonicalQuery,
		canonicalHeaders,
		signedHeaders,
		hashedPayload,
	}, "\n")
	return creq, signedHeaders, nil
}

// EscapePath percent-encodes a request path for the canonical URI,
// preserving '/' separators. The same encoded form must be used as the
// request target on the wire or the server-side verification fails.
func EscapePath(path string) string {
	return rest.EscapePath(path, false)
}

// AmbiguousHeaderError reports two input header names that collapse to the
// same lowercase name and therefore cannot be canonicalized.
type AmbiguousHeaderError struct {
	Name string
}

func (e *AmbiguousHeaderError) Error() string {
	return fmt.Sprintf("header %q appears more than once after lowercasing", e.Name)
}
