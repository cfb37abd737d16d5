package pie

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no cause", NewError(ErrCodeInvalidData, "row %d", 3), "INVALID_DATA: row 3"},
		{"with cause", Wrap(ErrCodeResolver, io.EOF, "color for %q", "A"), `RESOLVER: color for "A": EOF`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	err := fmt.Errorf("update: %w", Wrap(ErrCodeSelection, io.ErrUnexpectedEOF, "select"))

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause lost through Unwrap")
	}
	if !Is(err, ErrCodeSelection) {
		t.Error("Is should find the code through wrapping")
	}
	if Is(err, ErrCodeResolver) {
		t.Error("Is matched the wrong code")
	}
	if ErrorCode(err) != ErrCodeSelection {
		t.Errorf("ErrorCode = %q", ErrorCode(err))
	}
	if ErrorCode(io.EOF) != "" || Is(nil, ErrCodeSelection) {
		t.Error("plain errors carry no code")
	}
}
