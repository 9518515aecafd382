package minio

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// S3 error codes recognized by the classifier. These are the wire-level
// codes returned by MinIO (and any S3-compatible server) in error
// responses.
const (
	codeNoSuchKey             = "NoSuchKey"
	codeNoSuchBucket          = "NoSuchBucket"
	codeAccessDenied          = "AccessDenied"
	codeBucketAlreadyExists   = "BucketAlreadyExists"
	codeBucketAlreadyOwned    = "BucketAlreadyOwnedByYou"
	codeBucketNotEmpty        = "BucketNotEmpty"
	codePreconditionFailed    = "PreconditionFailed"
	codeInvalidAccessKeyID    = "InvalidAccessKeyId"
	codeSignatureDoesNotMatch = "SignatureDoesNotMatch"
)

// ClassifyError maps a minio-go error onto the LumenDesk error taxonomy.
// The operation names the storage action that failed (e.g. "put_object"),
// bucket and object identify the target (object may be empty for
// bucket-level operations).
//
// Classification rules:
//   - NoSuchKey becomes a not-found error for the object
//   - NoSuchBucket becomes a not-found error for the bucket
//   - AccessDenied and credential failures become business rule violations
//   - BucketAlreadyExists, BucketAlreadyOwnedByYou, BucketNotEmpty, and
//     PreconditionFailed become conflicts
//   - [context.DeadlineExceeded] becomes a timeout error
//   - [context.Canceled] becomes a canceled error
//   - everything else becomes a filesystem error with "bucket/object" as
//     the path
//
// The returned error wraps the original driver error, so checks such as
// minio.ToErrorResponse(errors.Unwrap(err)) keep working. ClassifyError
// returns nil when err is nil.
func ClassifyError(err error, operation, bucket, object string) error {
	if err == nil {
		return nil
	}

	var kind lderr.AppError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = lderr.Timeout(operation, 0)
	case errors.Is(err, context.Canceled):
		kind = lderr.Canceled(operation, "context canceled")
	default:
		kind = classifyResponse(minio.ToErrorResponse(err), err, operation, bucket, object)
	}

	classified := lderr.New(kind).WithCause(err).WithContext("operation", operation)
	if bucket != "" {
		classified = classified.WithContext("bucket", bucket)
	}
	if object != "" {
		classified = classified.WithContext("object", object)
	}
	return classified
}

// classifyResponse maps an S3 error response onto a taxonomy kind. When the
// response carries no S3 code (the error did not come from the server), the
// failure classifies as a filesystem error.
func classifyResponse(resp minio.ErrorResponse, err error, operation, bucket, object string) lderr.AppError {
	switch resp.Code {
	case codeNoSuchKey:
		return lderr.NotFound("Object", objectPath(bucket, object))
	case codeNoSuchBucket:
		return lderr.NotFound("Bucket", bucket)
	case codeAccessDenied, codeInvalidAccessKeyID, codeSignatureDoesNotMatch:
		return lderr.BusinessRule("storage access policy", resp.Message)
	case codeBucketAlreadyExists, codeBucketAlreadyOwned, codeBucketNotEmpty, codePreconditionFailed:
		return lderr.Conflict(objectPath(bucket, object), resp.Message)
	case "":
		return lderr.FileSystem(objectPath(bucket, object), operation, err.Error())
	default:
		return lderr.FileSystem(objectPath(bucket, object), operation, resp.Message)
	}
}

// objectPath joins bucket and object into a single "bucket/object" path.
// Bucket-level operations with no object name report the bucket alone.
func objectPath(bucket, object string) string {
	if object == "" {
		return bucket
	}
	return bucket + "/" + object
}
