/*
Package sigv4 implements the AWS Signature Version 4 signing pipeline for S3.
See https://docs.aws.amazon.com/AmazonS3/latest/API/sig-v4-header-based-auth.html
for the authoritative description.

The pipeline is a sequence of pure functions over request-scoped values:

Step 1: serialize the request into the canonical form
`<METHOD>\n<URI>\n<QUERY>\n<HEADERS>\n<SIGNED_HEADERS>\n<PAYLOAD_HASH>`.

    - `URI`: percent-encoded path, '/' preserved.
    - `QUERY`: form-encoded key=value pairs sorted by key, space as '+'.
    - `HEADERS`: one `name:value` line per header, names lowercased and
      sorted, values trimmed, trailing newline after the last line.
    - `SIGNED_HEADERS`: the same sorted names joined with ';'.
    - `PAYLOAD_HASH`: hex(sha256(body)); the empty body hashes to
      EmptyStringSHA256.

Step 2: build the string to sign:
`AWS4-HMAC-SHA256\n<TIMESTAMP>\n<SCOPE>\nhex(sha256(CANONICAL_REQUEST))`,
where `TIMESTAMP` is `YYYYMMDDTHHMMSSZ` in UTC and `SCOPE` is
`<YYYYMMDD>/<region>/s3/aws4_request`.

Step 3: derive the signing key by chaining HMAC-SHA256, each stage keyed by
the previous stage's raw output:

    kDate    = hmac("AWS4"+secret, YYYYMMDD)
    kRegion  = hmac(kDate, region)
    kService = hmac(kRegion, "s3")
    kSigning = hmac(kService, "aws4_request")

The first link is abstracted as a SecretHmac factory so the secret itself
need not be present in memory.

Step 4: the signature is hex(hmac(kSigning, stringToSign)), carried in
`Authorization: AWS4-HMAC-SHA256 Credential=<ACCESS_ID>/<SCOPE>,
SignedHeaders=<SIGNED_HEADERS>, Signature=<SIG>`.

Every byte of the canonical form is load-bearing: the server reconstructs
the same string from the request it received, so any divergence in ordering
or encoding shows up as a 403 SignatureDoesNotMatch.
*/
package sigv4
