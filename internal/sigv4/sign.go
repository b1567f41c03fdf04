package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
	"time"
)

// SecretHmac returns a fresh HMAC-SHA256 keyed with "AWS4"+secretAccessKey
// every time it is called. Supplying the first link of the key-derivation
// chain as a hash factory keeps the raw secret out of the signer; a
// hardware-backed implementation (e.g. a TPM keyed-hash object) can stand in
// for an in-memory key.
type SecretHmac func() hash.Hash

// StaticSecretHmac adapts an in-memory secret access key to a SecretHmac.
func StaticSecretHmac(secretAccessKey string) SecretHmac {
	return func() hash.Hash {
		return hmac.New(sha256.New, []byte("AWS4"+secretAccessKey))
	}
}

// Scope returns the credential scope "YYYYMMDD/region/s3/aws4_request" that
// bounds a derived key's validity.
func Scope(region string, t time.Time) string {
	return strings.Join([]string{
		formatShortTime(t),
		region,
		ServiceName,
		awsV4Request,
	}, "/")
}

// StringToSign assembles the fixed 4-line value that the derived key
// ultimately signs: algorithm, timestamp, scope, and the hex SHA256 of the
// canonical request.
func StringToSign(canonicalRequest, region string, t time.Time) (sts, scope string) {
	scope = Scope(region, t)
	sts = strings.Join([]string{
		authHeaderPrefix,
		formatTime(t),
		scope,
		hex.EncodeToString(hashSHA256([]byte(canonicalRequest))),
	}, "\n")
	return sts, scope
}

// DeriveKey runs the 4-step HMAC chain that scopes the secret to
// (date, region, s3, aws4_request). Each stage's raw 32-byte output keys the
// next stage. The first stage is the caller-supplied secret HMAC applied to
// the short date.
func DeriveKey(secretHmac SecretHmac, region string, t time.Time) []byte {
	h := secretHmac()
	h.Write([]byte(formatShortTime(t)))
	kDate := h.Sum(nil)

	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(ServiceName))
	return hmacSHA256(kService, []byte(awsV4Request))
}

// Sign computes the final lowercase hex signature of the string to sign
// under the derived key.
func Sign(signingKey []byte, stringToSign string) string {
	return hex.EncodeToString(hmacSHA256(signingKey, []byte(stringToSign)))
}

// AuthorizationHeader formats the Authorization header value. The layout,
// including the ", " separators, is part of the wire contract.
func AuthorizationHeader(accessKeyID, scope, signedHeaders, signature string) string {
	parts := []string{
		authHeaderPrefix + " Credential=" + accessKeyID + "/" + scope,
		"SignedHeaders=" + signedHeaders,
		"Signature=" + signature,
	}
	return strings.Join(parts, ", ")
}

// FormatTime renders t as the sigv4 timestamp "YYYYMMDDTHHMMSSZ" in UTC,
// truncated to whole seconds.
func FormatTime(t time.Time) string {
	return formatTime(t)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func formatShortTime(t time.Time) string {
	return t.UTC().Format(shortTimeFormat)
}

func hashSHA256(data []byte) []byte {
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
