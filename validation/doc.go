// Package validation provides input validation for speechkit requests and
// configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type TranscribeRequest struct {
//	    Provider string `json:"provider" validate:"required"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("provider", req.Provider)
//	err := v.Validate()
package validation
