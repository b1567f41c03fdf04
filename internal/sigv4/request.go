package sigv4

import (
	"fmt"
	"time"
)

// Request describes one HTTP request to be signed. All fields are
// request-scoped values; nothing here outlives the Authorize call.
//
// Headers must already contain the pre-signing headers the canonical form
// requires (host, x-amz-date, x-amz-content-sha256); Authorize never mutates
// the map. Path must start with "/".
type Request struct {
	Method  string
	Path    string
	Bucket  string
	Region  string
	Headers map[string]string
	Query   map[string]string
	Payload []byte

	// HashedPayload optionally carries the precomputed hex SHA256 of
	// Payload so callers that already set x-amz-content-sha256 don't hash
	// twice. Left empty, it is computed from Payload.
	HashedPayload string
}

// MissingTargetError reports a request whose bucket or region is neither set
// on the client nor passed at call time. It is raised before any hashing or
// key derivation happens.
type MissingTargetError struct {
	Bucket string
	Region string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("region and bucket must be either set at the client level or passed in at call time; region=%q bucket=%q", e.Region, e.Bucket)
}

// Authorize runs the full signing pipeline over req and returns the
// Authorization header value. The derived key is looked up in cache when one
// is supplied, otherwise derived fresh and discarded.
func Authorize(accessKeyID string, secretHmac SecretHmac, req Request, t time.Time, cache *KeyCache) (string, error) {
	if req.Bucket == "" || req.Region == "" {
		return "", &MissingTargetError{Bucket: req.Bucket, Region: req.Region}
	}

	hashedPayload := req.HashedPayload
	if hashedPayload == "" {
		hashedPayload = HashedPayload(req.Payload)
	}
	canonicalQuery := CanonicalQueryString(req.Query)

	creq, signedHeaders, err := CanonicalRequest(req.Method, req.Path, req.Headers, canonicalQuery, hashedPayload)
	if err != nil {
		return "", err
	}

	stringToSign, scope := StringToSign(creq, req.Region, t)

	var signingKey []byte
	if cache != nil {
		signingKey = cache.Get(secretHmac, req.Region, t)
	} else {
		signingKey = DeriveKey(secretHmac, req.Region, t)
	}

	signature := Sign(signingKey, stringToSign)
	return AuthorizationHeader(accessKeyID, scope, signedHeaders, signature), nil
}
