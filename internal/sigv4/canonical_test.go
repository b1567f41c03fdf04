package sigv4

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalQueryString(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{"empty map", map[string]string{}, ""},
		{"nil map", nil, ""},
		{
			"sorted by key",
			map[string]string{"mimeType": "application/json", "limit": "20"},
			"limit=20&mimeType=application%2Fjson",
		},
		{
			"space encoded as plus",
			map[string]string{"prefix": "my folder/2016"},
			"prefix=my+folder%2F2016",
		},
		{
			"unreserved characters untouched",
			map[string]string{"a-b_c.d~e": "A1-_.~"},
			"a-b_c.d~e=A1-_.~",
		},
		{
			"reserved characters percent-encoded uppercase",
			map[string]string{"token": "a/b+c=d"},
			"token=a%2Fb%2Bc%3Dd",
		},
		{
			"list objects v2 params",
			map[string]string{
				"list-type":          "2",
				"prefix":             "logs/2016/",
				"max-keys":           "10",
				"continuation-token": "1ueGcxLPRx1Tr/XYExHnhbYLgveDs2J/wm36Hy4vbOwM=",
			},
			"continuation-token=1ueGcxLPRx1Tr%2FXYExHnhbYLgveDs2J%2Fwm36Hy4vbOwM%3D&list-type=2&max-keys=10&prefix=logs%2F2016%2F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalQueryString(tt.params); got != tt.want {
				t.Errorf("expect %q but got %q", tt.want, got)
			}
		})
	}
}

func TestCanonicalHeaders(t *testing.T) {
	headers := map[string]string{
		"Host":                 "examplebucket.s3.amazonaws.com",
		"Range":                "bytes=0-9  ",
		"x-amz-content-sha256": EmptyStringSHA256,
		"X-Amz-Date":           "  20130524T000000Z",
	}

	signed, block, err := CanonicalHeaders(headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSigned := "host;range;x-amz-content-sha256;x-amz-date"
	if signed != wantSigned {
		t.Errorf("expect signed headers %q but got %q", wantSigned, signed)
	}

	wantBlock := strings.Join([]string{
		"host:examplebucket.s3.amazonaws.com",
		"range:bytes=0-9",
		"x-amz-content-sha256:" + EmptyStringSHA256,
		"x-amz-date:20130524T000000Z",
		"",
	}, "\n")
	if block != wantBlock {
		t.Errorf("expect block %q but got %q", wantBlock, block)
	}
	if !strings.HasSuffix(block, "\n") {
		t.Errorf("canonical headers block must end with a newline")
	}
}

func TestCanonicalHeadersIdempotent(t *testing.T) {
	headers := map[string]string{
		"Host":       "examplebucket.s3.amazonaws.com",
		"X-Amz-Date": "20130524T000000Z",
	}

	signed1, block1, err := CanonicalHeaders(headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-canonicalizing the canonical output must be a fixed point.
	again := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSuffix(block1, "\n"), "\n") {
		idx := strings.Index(line, ":")
		again[line[:idx]] = line[idx+1:]
	}

	signed2, block2, err := CanonicalHeaders(again)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed1 != signed2 {
		t.Errorf("signed headers changed on second pass: %q vs %q", signed1, signed2)
	}
	if block1 != block2 {
		t.Errorf("canonical block changed on second pass: %q vs %q", block1, block2)
	}
}

func TestCanonicalHeadersAmbiguous(t *testing.T) {
	headers := map[string]string{
		"Content-Type": "text/plain",
		"content-type": "application/json",
	}

	_, _, err := CanonicalHeaders(headers)
	var ambiguous *AmbiguousHeaderError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expect AmbiguousHeaderError but got %v", err)
	}
	if ambiguous.Name != "content-type" {
		t.Errorf("expect colliding name %q but got %q", "content-type", ambiguous.Name)
	}
}

func TestHashedPayload(t *testing.T) {
	if got := HashedPayload(nil); got != EmptyStringSHA256 {
		t.Errorf("expect empty payload hash %q but got %q", EmptyStringSHA256, got)
	}
	if got := HashedPayload([]byte{}); got != EmptyStringSHA256 {
		t.Errorf("expect empty payload hash %q but got %q", EmptyStringSHA256, got)
	}

	// sha256("Welcome to Amazon S3.") from the AWS PUT object example.
	want := "44ce7dd67c959e0d3524ffac1771dfbba87d2b6b4b4e99e42034a8b803f8b072"
	if got := HashedPayload([]byte("Welcome to Amazon S3.")); got != want {
		t.Errorf("expect %q but got %q", want, got)
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/test.txt", "/test.txt"},
		{"/test$file.text", "/test%24file.text"},
		{"/logs/2016/file name.gz", "/logs/2016/file%20name.gz"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := EscapePath(tt.path); got != tt.want {
			t.Errorf("EscapePath(%q): expect %q but got %q", tt.path, tt.want, got)
		}
	}
}
