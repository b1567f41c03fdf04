package s3sig

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"

	"github.com/fernhill/s3sig/internal/sigv4"
)

// SignSDKRequest is an aws-sdk-go signing handler backed by this signer. It
// replaces the SDK's own v4 handler so requests built by an *s3.S3 client
// are signed without the SDK ever holding the secret:
//
//	svc.Handlers.Sign.RemoveByName(v4.SignRequestHandler.Name)
//	svc.Handlers.Sign.PushBack(signer.SignSDKRequest)
func (s *Signer) SignSDKRequest(req *request.Request) {
	s.SignSDKRequestWithOpts(req)
}

// SignSDKRequestWithOpts is SignSDKRequest with an injectable signing time.
func (s *Signer) SignSDKRequestWithOpts(req *request.Request, opts ...SDKOption) {
	signOpts := sdkOptions{
		ts: time.Now(),
	}
	for _, opt := range opts {
		opt.setOption(&signOpts)
	}

	region := req.ClientInfo.SigningRegion
	if region == "" {
		region = aws.StringValue(req.Config.Region)
	}

	if err := s.signHTTP(req, region, signOpts.ts); err != nil {
		req.Error = err
	}
}

func (s *Signer) signHTTP(req *request.Request, region string, ts time.Time) error {
	if region == "" {
		return &MissingTargetError{Region: region}
	}

	httpReq := req.HTTPRequest

	host := httpReq.Host
	if host == "" {
		host = httpReq.URL.Host
	}

	hashedPayload, err := sdkPayloadHash(req)
	if err != nil {
		return err
	}

	httpReq.Header.Set("X-Amz-Date", sigv4.FormatTime(ts))
	httpReq.Header.Set("X-Amz-Content-Sha256", hashedPayload)

	headers := make(map[string]string, len(httpReq.Header)+1)
	headers["host"] = host
	for name, values := range httpReq.Header {
		switch name {
		// Never signed; the SDK may rewrite these after signing.
		case "Authorization", "User-Agent", "X-Amzn-Trace-Id":
			continue
		}
		headers[name] = strings.Join(values, ",")
	}

	query := make(map[string]string)
	for key, values := range httpReq.URL.Query() {
		if len(values) > 1 {
			return fmt.Errorf("query key %q repeats; cannot canonicalize multi-valued parameters", key)
		}
		query[key] = values[0]
	}

	canonicalQuery := sigv4.CanonicalQueryString(query)
	creq, signedHeaders, err := sigv4.CanonicalRequest(httpReq.Method, httpReq.URL.Path, headers, canonicalQuery, hashedPayload)
	if err != nil {
		return err
	}

	stringToSign, scope := sigv4.StringToSign(creq, region, ts)

	var signingKey []byte
	if s.KeyCache != nil {
		signingKey = s.KeyCache.Get(s.SecretAccessKeyHmacSha256, region, ts)
	} else {
		signingKey = sigv4.DeriveKey(s.SecretAccessKeyHmacSha256, region, ts)
	}
	signature := sigv4.Sign(signingKey, stringToSign)

	// Rewrite the outgoing query string so the wire bytes match the signed
	// canonical form exactly.
	httpReq.URL.RawQuery = canonicalQuery

	httpReq.Header.Set("Authorization", sigv4.AuthorizationHeader(s.AccessKeyID, scope, signedHeaders, signature))
	req.LastSignedAt = ts
	return nil
}

// sdkPayloadHash resolves the payload hash for an SDK request: an explicit
// X-Amz-Content-Sha256 header wins, a bodyless request is the empty digest,
// anything else must be seekable so it can be hashed and rewound.
func sdkPayloadHash(req *request.Request) (string, error) {
	if explicit := req.HTTPRequest.Header.Get("X-Amz-Content-Sha256"); explicit != "" {
		return explicit, nil
	}
	if req.HTTPRequest.ContentLength == 0 {
		return EmptyPayloadHash, nil
	}
	body := req.GetBody()
	if body == nil {
		return EmptyPayloadHash, nil
	}
	if !aws.IsReaderSeekable(body) {
		return "", fmt.Errorf("cannot use unseekable request body %T for a signed request", body)
	}

	start, err := body.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	if _, err := io.Copy(h, body); err != nil {
		return "", err
	}
	if _, err := body.Seek(start, io.SeekStart); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type sdkOptions struct {
	ts time.Time
}

// SDKOption adjusts SignSDKRequestWithOpts.
type SDKOption interface {
	setOption(*sdkOptions)
}

type sdkTimeOpt struct {
	ts time.Time
}

func (o sdkTimeOpt) setOption(opts *sdkOptions) {
	opts.ts = o.ts
}

// WithSigningTime pins the signing timestamp, mainly for tests.
func WithSigningTime(ts time.Time) SDKOption {
	return sdkTimeOpt{ts: ts}
}
