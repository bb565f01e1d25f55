package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{name: "message only", err: Validation("name is required"), want: "name is required"},
		{
			name: "with cause",
			err:  Wrap(errors.New("dial tcp: refused"), ErrCodeUnavailable, "eurocontrol"),
			want: "eurocontrol: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_NilError(t *testing.T) {
	if got := Wrap(nil, ErrCodeInternal, "x"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	base := NotFoundf("aircraft %d not found", 7)
	wrapped := fmt.Errorf("get: %w", base)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should match a wrapped AppError")
	}
	if IsValidation(wrapped) || IsConflict(wrapped) || IsTimeout(wrapped) || IsCanceled(wrapped) {
		t.Error("only the NotFound predicate should match")
	}
	if base.Message != "aircraft 7 not found" {
		t.Errorf("Message = %q", base.Message)
	}
}

func TestUnavailablef(t *testing.T) {
	cause := errors.New("status 503")
	err := Unavailablef(cause, "source %s", "wikipedia")

	if !IsUnavailable(err) {
		t.Fatal("IsUnavailable() = false")
	}
	if !errors.Is(err, cause) {
		t.Error("Unavailablef should wrap its cause")
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("mtow", "mtow must not be negative")); got != "mtow" {
		t.Errorf("GetField() = %q, want mtow", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain) = %q, want empty", got)
	}
	if got := Validationf("bad %s", "year").Message; got != "bad year" {
		t.Errorf("Validationf message = %q", got)
	}
}
