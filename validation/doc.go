// Package validation provides input validation for configuration and uploads.
//
// Config structs are checked with struct tags through go-playground/validator;
// upload metadata is checked with a chained Validator. Either way failures
// become one INVALID_INPUT AppError with per-field details.
//
// # Struct Tag Validation
//
//	type OpenAIConfig struct {
//	    Model string `mapstructure:"model" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("file", name).
//	    NotEmpty("file", size).
//	    AtMost("file", size, limit, "200MB").
//	    Err()
package validation
