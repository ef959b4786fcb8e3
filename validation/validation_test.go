package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/scribe/errors"
)

func TestValidatorRules(t *testing.T) {
	allowed := []string{"mp3", "wav"}
	tests := []struct {
		name    string
		run     func(v *Validator)
		wantMsg string
	}{
		{"required ok", func(v *Validator) { v.Required("file", "talk.mp4") }, ""},
		{"required blank", func(v *Validator) { v.Required("file", "   ") }, "is required"},
		{"one of ok", func(v *Validator) { v.OneOf("file", "mp3", "file type", allowed) }, ""},
		{"one of rejected", func(v *Validator) { v.OneOf("file", "exe", "file type", allowed) }, `unsupported file type "exe", allowed: mp3, wav`},
		{"zero bytes", func(v *Validator) { v.NotEmpty("file", 0) }, "must not be empty"},
		{"at limit", func(v *Validator) { v.AtMost("file", 200, 200, "200B") }, ""},
		{"over limit", func(v *Validator) { v.AtMost("file", 201, 200, "200B") }, "exceeds the 200B upload limit"},
		{"check false", func(v *Validator) { v.Check(false, "mode", "bad %s", "value") }, "bad value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			tt.run(v)
			if tt.wantMsg == "" {
				if v.Failed() {
					t.Fatalf("expected no errors, got %v", v.Errors())
				}
				return
			}
			if !v.Failed() || v.Errors()[0].Message != tt.wantMsg {
				t.Fatalf("expected %q, got %v", tt.wantMsg, v.Errors())
			}
		})
	}
}

func TestValidatorFirstFailurePerField(t *testing.T) {
	v := New().
		Required("file", "").
		OneOf("file", "", "file type", []string{"mp3"}).
		NotEmpty("size", 0)
	errs := v.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected one error per field, got %v", errs)
	}
	if errs[0].Field != "file" || errs[0].Message != "is required" {
		t.Errorf("expected the first file failure to win, got %v", errs[0])
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := New().Required("file", "").NotEmpty("size", 0).Err()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput || appErr.HTTPStatus != 400 {
		t.Errorf("expected INVALID_INPUT/400, got %s/%d", appErr.Code, appErr.HTTPStatus)
	}
	if appErr.Message != "file: is required; size: must not be empty" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestStructValidateValid(t *testing.T) {
	type Remote struct {
		APIKey string `mapstructure:"api_key" validate:"required"`
		Model  string `json:"model" validate:"required"`
	}

	if err := Validate(Remote{APIKey: "sk-x", Model: "whisper-1"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateUsesTagNames(t *testing.T) {
	type Remote struct {
		APIKey string `mapstructure:"api_key" validate:"required"`
		Model  string `json:"model" validate:"required"`
	}

	err := Validate(Remote{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "api_key: is required") {
		t.Errorf("expected error to mention 'api_key', got %q", errStr)
	}
	if !strings.Contains(errStr, "model: is required") {
		t.Errorf("expected error to mention 'model', got %q", errStr)
	}
}

func TestStructValidateNested(t *testing.T) {
	type Media struct {
		SegmentSeconds int `mapstructure:"segment_seconds" validate:"gt=0"`
	}
	type Config struct {
		Mode  string `mapstructure:"mode" validate:"oneof=local remote"`
		Media Media  `mapstructure:"media"`
	}

	err := Validate(Config{Mode: "cloud"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "mode: must be one of: local remote") {
		t.Errorf("expected oneof message, got %q", errStr)
	}
	if !strings.Contains(errStr, "media.segment_seconds: must be greater than 0") {
		t.Errorf("expected nested field path, got %q", errStr)
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{"APIKey": "a_p_i_key", "MaxSize": "max_size", "mode": "mode"} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
