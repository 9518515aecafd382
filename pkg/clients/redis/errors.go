package redis

import (
	"context"
	"errors"
	"net"

	"github.com/redis/go-redis/v9"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// ClassifyError maps a go-redis error onto the LumenDesk error taxonomy.
// The operation names the Redis command that failed (e.g. "get", "hset"),
// key is the key the command operated on (may be empty for multi-key
// commands), and addr is the server address used for network failure
// reporting.
//
// Classification rules:
//   - [redis.Nil] becomes a not-found error for the key
//   - [context.DeadlineExceeded] and network timeouts become timeout errors
//   - [context.Canceled] becomes a canceled error
//   - other [net.Error] failures become network errors for the address
//   - everything else becomes a database error for the operation
//
// The returned error wraps the original driver error, so sentinel checks
// such as errors.Is(err, redis.Nil) keep working on classified errors.
// ClassifyError returns nil when err is nil.
func ClassifyError(err error, operation, key, addr string) error {
	if err == nil {
		return nil
	}

	var kind lderr.AppError
	var netErr net.Error
	switch {
	case errors.Is(err, redis.Nil):
		kind = lderr.NotFound("Key", key)
	case errors.Is(err, context.DeadlineExceeded):
		kind = lderr.Timeout(operation, 0)
	case errors.Is(err, context.Canceled):
		kind = lderr.Canceled(operation, "context canceled")
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			kind = lderr.Timeout(operation, 0)
		} else {
			kind = lderr.Network(addr, err.Error())
		}
	default:
		kind = lderr.Database(operation, err.Error())
	}

	classified := lderr.New(kind).WithCause(err).WithContext("operation", operation)
	if key != "" {
		classified = classified.WithContext("key", key)
	}
	return classified
}
