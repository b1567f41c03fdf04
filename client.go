package s3sig

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fernhill/s3sig/internal/sigv4"
)

// Doer is the transport seam: anything that can round-trip an HTTP request.
// *http.Client satisfies it. Retries, pooling, and timeouts live behind this
// interface, not in the client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues signed GET/LIST/PUT requests against an S3-compatible
// object store.
//
//	c := &s3sig.Client{
//		Signer: s3sig.Signer{
//			AccessKeyID:               accessKeyID,
//			SecretAccessKeyHmacSha256: s3sig.StaticAccessKeyHmac(secretAccessKey),
//		},
//		Region: "us-west-2",
//		Bucket: "examplebucket",
//	}
//	resp, err := c.Get(ctx, "/logs/2016/file.gz")
//
// Region and Bucket may be left empty here and supplied per call with
// WithRegion/WithBucket; a call that resolves neither fails with
// MissingTargetError before anything is signed or sent.
type Client struct {
	Signer Signer

	Region string
	Bucket string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient Doer

	// Scheme defaults to "https".
	Scheme string

	// Host overrides the derived bucket host, for S3-compatible stores that
	// are not *.amazonaws.com. The override is both the connection target
	// and the signed host header.
	Host string

	// Logger, when set, gets a debug line per completed exchange. The
	// Authorization header and key material are never logged.
	Logger logrus.FieldLogger

	// Now is an injectable UTC clock for tests. Defaults to time.Now.
	Now func() time.Time
}

// BucketHost returns the virtual-hosted endpoint for a bucket/region pair.
// us-east-1 keeps the legacy form without a region segment. The same value
// is used as the connection target and as the signed host header; the two
// must never diverge.
func BucketHost(bucket, region string) string {
	if region == "us-east-1" {
		return bucket + ".s3.amazonaws.com"
	}
	return bucket + ".s3-" + region + ".amazonaws.com"
}

// Get fetches the object at path.
func (c *Client) Get(ctx context.Context, path string, opts ...Option) (*Response, error) {
	return c.do(ctx, "GET", path, nil, opts)
}

// Put stores payload as the object at path. The S3 REST API accepts no
// query parameters on PUT Object.
func (c *Client) Put(ctx context.Context, path string, payload []byte, opts ...Option) (*Response, error) {
	return c.do(ctx, "PUT", path, payload, opts)
}

// List runs a List Objects v2 request against the bucket root and parses
// the result. Filter with WithPrefix, WithMaxKeys, WithDelimiter; resume a
// truncated listing with WithContinuationToken.
func (c *Client) List(ctx context.Context, opts ...Option) (*ListResult, error) {
	opts = append([]Option{WithQueryParam("list-type", "2")}, opts...)
	resp, err := c.do(ctx, "GET", "/", nil, opts)
	if err != nil {
		return nil, err
	}
	return parseListResult(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, opts []Option) (*Response, error) {
	cfg := callConfig{
		headers: make(map[string]string),
		query:   make(map[string]string),
	}
	for _, opt := range opts {
		opt.setOption(&cfg)
	}

	bucket := cfg.bucket
	if bucket == "" {
		bucket = c.Bucket
	}
	region := cfg.region
	if region == "" {
		region = c.Region
	}
	if bucket == "" || region == "" {
		return nil, &MissingTargetError{Bucket: bucket, Region: region}
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	host := c.Host
	if host == "" {
		host = BucketHost(bucket, region)
	}
	now := c.now()

	hashedPayload := sigv4.HashedPayload(payload)

	headers := make(map[string]string, len(cfg.headers)+3)
	for name, value := range cfg.headers {
		headers[name] = value
	}
	headers["host"] = host
	headers["x-amz-content-sha256"] = hashedPayload
	headers["x-amz-date"] = sigv4.FormatTime(now)

	authorization, err := c.Signer.AuthorizationHeader(Request{
		Method:        method,
		Path:          path,
		Bucket:        bucket,
		Region:        region,
		Headers:       headers,
		Query:         cfg.query,
		Payload:       payload,
		HashedPayload: hashedPayload,
	}, now)
	if err != nil {
		return nil, err
	}

	// The URL carries the exact bytes that were signed: the escaped path
	// and the canonical query string.
	u := url.URL{
		Scheme:   c.scheme(),
		Host:     host,
		Path:     path,
		RawPath:  sigv4.EscapePath(path),
		RawQuery: sigv4.CanonicalQueryString(cfg.query),
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	for name, value := range headers {
		if strings.EqualFold(name, "host") {
			req.Host = value
			continue
		}
		req.Header.Set(name, value)
	}
	req.Header.Set("Authorization", authorization)

	httpResp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	if c.Logger != nil {
		c.Logger.WithFields(logrus.Fields{
			"method": method,
			"host":   host,
			"path":   path,
			"status": httpResp.StatusCode,
		}).Debug("s3 exchange complete")
	}

	if httpResp.StatusCode >= 300 {
		return nil, newResponseError(httpResp.StatusCode, body)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func (c *Client) httpClient() Doer {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) scheme() string {
	if c.Scheme != "" {
		return c.Scheme
	}
	return "https"
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}
