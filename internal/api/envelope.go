package api

import (
	"errors"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped on breaking changes to the envelope shape.
const EnvelopeVersion = 1

// APIEnvelope wraps every response body.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps response bodies in an
// APIEnvelope. Statuses of 400 and above produce error envelopes.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, _ := strconv.Atoi(status)
	if code < 400 {
		return APIEnvelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
	}

	env := APIEnvelope{Version: EnvelopeVersion}
	err, ok := v.(error)
	if !ok {
		env.Error = "request failed"
		return env, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		env.Error = apiErr.Message
		env.Code = apiErr.Code
		env.Message = apiErr.Message
		env.Details = apiErr.Details
		return env, nil
	}
	env.Error = err.Error()
	return env, nil
}
