package config

import (
	"fmt"
	"reflect"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// Validator is an optional interface that configuration structs may
// implement for custom validation logic. If the struct passed to
// [Loader.Load] implements Validator, its Validate method is called
// after tag-based validation ([required] tag) succeeds.
//
// Validate should return an error describing the first validation
// failure, or nil if the configuration is valid. Errors that already
// carry a taxonomy kind are returned with added annotation context;
// other errors are coerced and annotated.
//
// Example:
//
//	type TrackerConfig struct {
//	    Capacity int `env:"CAPACITY" envDefault:"100" yaml:"capacity"`
//	}
//
//	func (c *TrackerConfig) Validate() error {
//	    if c.Capacity < 1 {
//	        return lderr.New(lderr.Validation("capacity",
//	            fmt.Sprintf("must be at least 1, got %d", c.Capacity)))
//	    }
//	    return nil
//	}
type Validator interface {
	Validate() error
}

// validate performs tag-based required validation and then invokes the
// Validator interface if the config struct implements it. The cfg
// parameter is the original interface value (for Validator type
// assertion); rv is the dereferenced reflect.Value of the struct.
func validate(cfg any, rv reflect.Value) error {
	if err := validateRequired(rv, ""); err != nil {
		return err
	}

	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			wrapped := lderr.Context(err, "config: validation failed")
			if e, ok := lderr.AsError(wrapped); ok {
				return e.WithContext(configCodeKey, string(lderr.CodeConfigInvalid))
			}
			return wrapped
		}
	}

	return nil
}

// validateRequired recursively checks that all fields tagged with
// `required:"true"` hold non-zero values. The path parameter tracks
// the dotted field path for error messages (e.g., "Tracker.Capacity").
//
// Nested structs are traversed recursively. Unexported fields and
// non-struct types without a required tag are skipped.
func validateRequired(rv reflect.Value, path string) error {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rv.Field(i)
		sf := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		fieldPath := sf.Name
		if path != "" {
			fieldPath = path + "." + sf.Name
		}

		// Recurse into nested structs (but not named types like
		// time.Duration that are not Kind() == Struct anyway).
		if field.Kind() == reflect.Struct && sf.Type != durationType {
			if err := validateRequired(field, fieldPath); err != nil {
				return err
			}
			continue
		}

		if sf.Tag.Get("required") != "true" {
			continue
		}

		if field.IsZero() {
			return lderr.NewMessage(
				lderr.Validation(fieldPath, "required field is empty"),
				fmt.Sprintf("config: required field %q is empty", fieldPath)).
				WithContext(configCodeKey, string(lderr.CodeConfigMissingField))
		}
	}

	return nil
}
