package s3sig

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

// Response is a completed S3 exchange: status code, response headers, and
// the raw body bytes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Object is one entry of a List Objects v2 result.
type Object struct {
	Key          string    `xml:"Key"`
	LastModified time.Time `xml:"LastModified"`
	ETag         string    `xml:"ETag"`
	Size         int64     `xml:"Size"`
	StorageClass string    `xml:"StorageClass"`
}

// ListResult is the parsed ListBucketResult document returned by the List
// Objects v2 endpoint.
//
// When the listing is truncated, NextContinuationToken carries the opaque
// cursor to pass to the next List call:
//
//	r, err := client.List(ctx, s3sig.WithPrefix("logs/"))
//	for err == nil && r.IsTruncated {
//		r, err = client.List(ctx, s3sig.WithPrefix("logs/"),
//			s3sig.WithContinuationToken(r.NextContinuationToken))
//	}
type ListResult struct {
	XMLName     xml.Name `xml:"ListBucketResult"`
	Name        string   `xml:"Name"`
	Prefix      string   `xml:"Prefix"`
	Delimiter   string   `xml:"Delimiter"`
	KeyCount    int      `xml:"KeyCount"`
	MaxKeys     int      `xml:"MaxKeys"`
	IsTruncated bool     `xml:"IsTruncated"`

	// NextContinuationToken is only present when IsTruncated is true.
	NextContinuationToken string `xml:"NextContinuationToken"`

	Contents []Object `xml:"Contents"`

	// CommonPrefixes has entries only when a delimiter was given; keys
	// rolled up under a common prefix are omitted from Contents.
	CommonPrefixes []string `xml:"CommonPrefixes>Prefix"`
}

// Keys returns just the object keys from Contents.
func (r *ListResult) Keys() []string {
	keys := make([]string, len(r.Contents))
	for i, obj := range r.Contents {
		keys[i] = obj.Key
	}
	return keys
}

// ResponseError is returned for any exchange that completes with a status
// code >= 300. Code and Message are filled from the AWS XML error body when
// one is present; Body always holds the raw bytes.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
	Body       []byte
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("s3 returned status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("s3 returned status %d with body: %s", e.StatusCode, e.Body)
}

func newResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       body,
	}

	// https://docs.aws.amazon.com/AmazonS3/latest/API/ErrorResponses.html
	var parsed struct {
		XMLName   xml.Name `xml:"Error"`
		Code      string   `xml:"Code"`
		Message   string   `xml:"Message"`
		RequestID string   `xml:"RequestId"`
	}
	if err := xml.Unmarshal(body, &parsed); err == nil {
		respErr.Code = parsed.Code
		respErr.Message = parsed.Message
		respErr.RequestID = parsed.RequestID
	}
	return respErr
}

func parseListResult(body []byte) (*ListResult, error) {
	var result ListResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse list response: %w", err)
	}
	return &result, nil
}
