package s3sig

import "strconv"

// Option adjusts a single Get, Put, or List call.
type Option interface {
	setOption(*callConfig)
}

type callConfig struct {
	bucket  string
	region  string
	headers map[string]string
	query   map[string]string
}

type optionFunc func(*callConfig)

func (f optionFunc) setOption(cfg *callConfig) { f(cfg) }

// WithBucket overrides the client-level bucket for this call.
func WithBucket(bucket string) Option {
	return optionFunc(func(cfg *callConfig) { cfg.bucket = bucket })
}

// WithRegion overrides the client-level region for this call.
func WithRegion(region string) Option {
	return optionFunc(func(cfg *callConfig) { cfg.region = region })
}

// WithHeader adds one request header. It will be signed along with the
// headers the client inserts itself.
func WithHeader(name, value string) Option {
	return optionFunc(func(cfg *callConfig) { cfg.headers[name] = value })
}

// WithHeaders adds a set of request headers.
func WithHeaders(headers map[string]string) Option {
	return optionFunc(func(cfg *callConfig) {
		for name, value := range headers {
			cfg.headers[name] = value
		}
	})
}

// WithQueryParam adds one query parameter. Rarely needed for Get (e.g.
// versionId); List sets its own parameters through the options below.
func WithQueryParam(key, value string) Option {
	return optionFunc(func(cfg *callConfig) { cfg.query[key] = value })
}

// WithPrefix limits a List call to keys beginning with prefix. The prefix is
// given without a leading slash, e.g. "logs/2016/".
func WithPrefix(prefix string) Option {
	return WithQueryParam("prefix", prefix)
}

// WithMaxKeys caps the number of keys a List call returns (S3 default 1000).
// With a delimiter set, each CommonPrefixes entry counts as one key.
func WithMaxKeys(n int) Option {
	return WithQueryParam("max-keys", strconv.Itoa(n))
}

// WithDelimiter groups List results: keys sharing the same string between
// the prefix and the first delimiter are rolled up into CommonPrefixes.
func WithDelimiter(delimiter string) Option {
	return WithQueryParam("delimiter", delimiter)
}

// WithContinuationToken resumes a truncated List from the cursor returned in
// ListResult.NextContinuationToken.
func WithContinuationToken(token string) Option {
	return WithQueryParam("continuation-token", token)
}
