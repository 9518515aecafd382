package errors

import (
	"errors"
	"testing"
)

func TestCoerce(t *testing.T) {
	if Coerce(nil) != nil {
		t.Error("Coerce(nil) should be nil")
	}

	kind := Conflict("users.email", "taken")
	if got := Coerce(New(kind)); got != AppError(kind) {
		t.Errorf("Coerce should return the carried kind, got %T", got)
	}

	got := Coerce(errors.New("disk on fire"))
	internal, ok := got.(*InternalError)
	if !ok {
		t.Fatalf("Coerce of a plain error should be internal, got %T", got)
	}
	if internal.Message != "disk on fire" {
		t.Errorf("Message = %q", internal.Message)
	}
}

func TestContext(t *testing.T) {
	if Context(nil, "loading user") != nil {
		t.Error("Context(nil) should be nil")
	}

	t.Run("preserves kind and prefixes message", func(t *testing.T) {
		err := Context(New(Validation("age", "Must be positive")), "Failed to validate user")
		if !IsValidation(err) {
			t.Error("kind should survive Context")
		}
		want := "Failed to validate user: Validation failed for 'age': Must be positive"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("keeps annotation context on the wrapper", func(t *testing.T) {
		inner := New(NotFound("User", "1")).WithContext("tenant", "acme")
		err := Context(inner, "resolving owner")
		e, ok := AsError(err)
		if !ok {
			t.Fatal("result should be an *Error")
		}
		if got, _ := e.ContextValue("tenant"); got != "acme" {
			t.Errorf("annotation lost, tenant = %q", got)
		}
	})

	t.Run("classifies plain errors internal and chains them", func(t *testing.T) {
		plain := errors.New("io failure")
		err := Context(plain, "writing state")
		if !IsInternal(err) {
			t.Error("plain errors should coerce to internal")
		}
		if !errors.Is(err, plain) {
			t.Error("original error should stay in the chain")
		}
		if err.Error() != "writing state: io failure" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}

func TestContextFunc_Lazy(t *testing.T) {
	called := false
	err := ContextFunc(nil, func() string {
		called = true
		return "never"
	})
	if err != nil {
		t.Error("ContextFunc(nil) should be nil")
	}
	if called {
		t.Error("closure must not run on the success path")
	}

	err = ContextFunc(New(Internal("boom")), func() string { return "during sync" })
	if err == nil || err.Error() != "during sync: Internal error: boom" {
		t.Errorf("Error() = %v", err)
	}
}

func TestMapNotFound(t *testing.T) {
	if MapNotFound(nil, func() string { return "x" }) != nil {
		t.Error("MapNotFound(nil) should be nil")
	}

	original := errors.New("row scan failed")
	err := MapNotFound(original, func() string { return "42" })
	if !IsNotFound(err) {
		t.Error("result should be not-found")
	}
	// The replacement is total: the original failure must not leak.
	if errors.Is(err, original) {
		t.Error("original error must be discarded")
	}
	if err.Error() != "Resource not found: 42" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMapValidation(t *testing.T) {
	if MapValidation(nil, "f", "m") != nil {
		t.Error("MapValidation(nil) should be nil")
	}

	err := MapValidation(errors.New("strconv failure"), "age", "Must be a number")
	if !IsValidation(err) {
		t.Error("result should be validation")
	}
	if err.Error() != "Validation failed for 'age': Must be a number" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestOkOrNotFound(t *testing.T) {
	got, err := OkOrNotFound(42, true, "User", "123")
	if err != nil || got != 42 {
		t.Errorf("present value: got %d, err %v", got, err)
	}

	got, err = OkOrNotFound(0, false, "User", "123")
	if got != 0 {
		t.Errorf("absent value should be zero, got %d", got)
	}
	if !IsNotFound(err) {
		t.Errorf("absent value should produce not-found, got %v", err)
	}
	if err.Error() != "User not found: 123" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestHandle(t *testing.T) {
	double := func(v int) int { return v * 2 }

	got := Handle(42, nil, double, func(AppError) int { return -1 })
	if got != 84 {
		t.Errorf("success path = %d, want 84", got)
	}

	got = Handle(42, New(NotFound("Item", "1")), double, func(k AppError) int {
		if k.Code() != CodeNotFound {
			t.Errorf("failure path received code %q", k.Code())
		}
		return -1
	})
	if got != -1 {
		t.Errorf("failure path = %d, want -1", got)
	}

	// Plain errors still reach the failure branch, coerced to internal.
	got = Handle(0, errors.New("plain"), double, func(k AppError) int {
		if k.Code() != CodeInternal {
			t.Errorf("coerced code = %q", k.Code())
		}
		return -2
	})
	if got != -2 {
		t.Errorf("coerced failure path = %d, want -2", got)
	}
}
