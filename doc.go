/*
Package s3sig signs HTTP requests for S3-compatible object stores with AWS
Signature Version 4 and provides a minimal client for GET, PUT, and List
Objects v2.

The Signer never needs the secret access key itself, only a factory that
returns an HMAC-SHA256 keyed with "AWS4"+secret. StaticAccessKeyHmac covers
the in-memory case; the examples/tpmsigner program shows the same factory
backed by a TPM keyed-hash object, so the secret never touches process
memory.

The whole signing path is a pure computation over request-scoped values: no
I/O, no shared mutable state, safe to call from any number of goroutines.
The optional KeyCache is the one piece of retained state; it holds only
final derived keys, scoped to (date, region) and dropped when the scope date
rolls over.
*/
package s3sig
