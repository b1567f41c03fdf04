package s3sig

import (
	"hash"
	"time"

	"github.com/fernhill/s3sig/internal/sigv4"
)

// EmptyPayloadHash is the hex SHA256 of a zero-length payload, used as the
// x-amz-content-sha256 value for bodyless requests.
const EmptyPayloadHash = sigv4.EmptyStringSHA256

// Request describes one HTTP request to be signed. See the field
// requirements on Signer.AuthorizationHeader.
type Request = sigv4.Request

// MissingTargetError reports a request whose bucket or region is neither set
// on the client nor passed at call time.
type MissingTargetError = sigv4.MissingTargetError

// AmbiguousHeaderError reports two header names that collapse to the same
// lowercase name, which would make the signed value nondeterministic.
type AmbiguousHeaderError = sigv4.AmbiguousHeaderError

// KeyCache memoizes derived signing keys per (scope date, region). Entries
// are evicted when the scope date rolls over.
type KeyCache = sigv4.KeyCache

// NewKeyCache returns an empty derived-key cache for use as Signer.KeyCache.
func NewKeyCache() *KeyCache {
	return sigv4.NewKeyCache()
}

// Signer computes sigv4 Authorization header values for S3 requests.
type Signer struct {
	AccessKeyID string

	// SecretAccessKeyHmacSha256 should return a new hash.Hash every time it
	// is called. The key for this hmac must be the string:
	// "AWS4"+SecretAccessKey.
	// A common implementation will be to return hmac.New() from this
	// function; StaticAccessKeyHmac builds that for an in-memory secret.
	// Hardware-backed keys (e.g. a TPM keyed-hash object) can supply their
	// own implementation so the secret never enters process memory.
	SecretAccessKeyHmacSha256 func() hash.Hash

	// KeyCache, when set, reuses derived signing keys across requests with
	// the same scope date and region. Leave nil to derive a fresh key per
	// request and retain nothing.
	KeyCache *KeyCache
}

// StaticAccessKeyHmac adapts an in-memory secret access key to the hash
// factory the Signer consumes.
func StaticAccessKeyHmac(secretAccessKey string) func() hash.Hash {
	return sigv4.StaticSecretHmac(secretAccessKey)
}

// AuthorizationHeader signs req at time t and returns the Authorization
// header value. req.Headers must already contain host, x-amz-date, and
// x-amz-content-sha256; the map is not mutated. Bucket and Region must be
// non-empty or a MissingTargetError is returned before anything is hashed.
func (s *Signer) AuthorizationHeader(req Request, t time.Time) (string, error) {
	return sigv4.Authorize(s.AccessKeyID, s.SecretAccessKeyHmacSha256, req, t, s.KeyCache)
}
