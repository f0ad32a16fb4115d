package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "wrapped item not found", err: fmt.Errorf("eleves 42: %w", ErrItemNotFound), wantCode: "ENT001"},
		{name: "busy", err: ErrBusy, wantCode: "ENT003"},
		{name: "invalid transition", err: fmt.Errorf("submit from none: %w", ErrInvalidTransition), wantCode: "UI001"},
		{name: "unknown filter", err: fmt.Errorf("filter: %w", ErrUnknownFilter), wantCode: "UI002"},
		{name: "tab not found", err: fmt.Errorf("switch: %w", ErrTabNotFound), wantCode: "TAB001"},
		{name: "invalid tab", err: fmt.Errorf("%w: empty id", ErrInvalidTab), wantCode: "TAB002"},
		{name: "import unsupported", err: ErrImportUnsupported, wantCode: "IMP001"},
		{name: "too many imports", err: ErrTooManyImports, wantCode: "IMP002"},
		{name: "export unsupported", err: ErrExportUnsupported, wantCode: "EXP001"},
		{name: "context canceled", err: fmt.Errorf("list: %w", context.Canceled), wantCode: "REQ001"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "REQ002"},
		{name: "required field", err: &ValidationError{Problems: []string{"required field: Nom"}}, wantCode: "VAL003"},
		{name: "invalid number", err: errors.New("invalid number: Montant"), wantCode: "VAL002"},
		{name: "invalid email", err: errors.New("invalid email: E-mail"), wantCode: "VAL006"},
		{name: "duplicate id", err: errors.New("eleve 3 already exists"), wantCode: "ENT002"},
		{name: "import row", err: errors.New("import row 4: required field: Nom"), wantCode: "VAL003"},
		{name: "file too large", err: errors.New("file too large: 12MB"), wantCode: "FILE001"},
		{name: "unsupported file", err: errors.New("unsupported file type \".pdf\""), wantCode: "FILE002"},
		{name: "rate limit", err: errors.New("rate limit exceeded"), wantCode: "RATE001"},
		{name: "case insensitive", err: errors.New("EMPTY FILE"), wantCode: "FILE005"},
		{name: "unknown error", err: errors.New("some random internal error"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() returned an empty message")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(errors.New("required field: Nom"))
	want := "Champ obligatoire vide (Code: VAL003). Remplissez tous les champs obligatoires"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	got = FormatUserError(ErrExportUnsupported)
	want = "L'export n'est pas disponible pour cet onglet (Code: EXP001)"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "sentinel is user facing", err: ErrBusy, want: true},
		{name: "known pattern is user facing", err: errors.New("invalid date: Date"), want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
