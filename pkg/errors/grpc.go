package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcCode maps a taxonomy kind to the closest gRPC status code.
func grpcCode(k AppError) codes.Code {
	switch k.(type) {
	case *NotFoundError, *PluginNotFoundError:
		return codes.NotFound
	case *ValidationError:
		return codes.InvalidArgument
	case *BusinessRuleError, *InvalidStateError, *PluginDependencyError:
		return codes.FailedPrecondition
	case *ConflictError:
		return codes.AlreadyExists
	case *TimeoutError:
		return codes.DeadlineExceeded
	case *CanceledError:
		return codes.Canceled
	case *NetworkError:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// ToGRPCStatus converts err into a gRPC status error so RPC boundaries
// surface the taxonomy through standard status codes. Errors carrying no
// taxonomy kind map to codes.Unknown. ToGRPCStatus(nil) is nil.
func ToGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	k, ok := AsAppError(err)
	if !ok {
		return status.Error(codes.Unknown, err.Error())
	}
	return status.Error(grpcCode(k), err.Error())
}

// FromGRPCStatus converts a gRPC status error back into a taxonomy kind.
// The mapping is an approximation: the status message becomes the kind's
// message field and positional fields (entity, operation) take generic
// values. Non-status errors map to an internal kind. FromGRPCStatus(nil)
// is nil.
func FromGRPCStatus(err error) AppError {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return Internal(err.Error())
	}
	switch st.Code() {
	case codes.NotFound:
		return NotFound("Resource", st.Message())
	case codes.InvalidArgument:
		return Validation("request", st.Message())
	case codes.AlreadyExists:
		return Conflict("resource", st.Message())
	case codes.FailedPrecondition:
		return BusinessRule("precondition", st.Message())
	case codes.DeadlineExceeded:
		return Timeout("rpc", 0)
	case codes.Canceled:
		return Canceled("rpc", st.Message())
	case codes.Unavailable:
		return Network("rpc", st.Message())
	default:
		return Internal(st.Message())
	}
}
