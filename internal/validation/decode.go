// Package validation decodes request bodies and checks them against JSON
// Schemas before they reach a service.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
)

const maxBodyBytes = 1 << 20

const schemaBaseURL = "https://chronos.local/schemas/"

// MustCompile compiles an embedded schema document. Schemas are package
// level values, so a broken one fails at init.
func MustCompile(name, schema string) *jsonschema.Schema {
	return jsonschema.MustCompileString(schemaBaseURL+name+".json", schema)
}

// DecodeJSON validates the request body against schema and decodes it into dst.
// Every failure comes back as *apperror.ValidationError.
func DecodeJSON(r *http.Request, schema *jsonschema.Schema, dst interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperror.Invalid("body", nil, "could not be read")
	}
	return Decode(raw, schema, dst)
}

func Decode(raw []byte, schema *jsonschema.Schema, dst interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return apperror.Invalid("body", nil, "is required")
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperror.Invalid("body", nil, "must be valid JSON")
	}

	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			return fromSchemaError(err)
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return apperror.Invalid("body", nil, err.Error())
	}
	return nil
}

func fromSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return apperror.Invalid("body", nil, err.Error())
	}

	var verr *apperror.ValidationError
	collect(ve, &verr)
	if verr == nil {
		return apperror.Invalid("body", nil, ve.Message)
	}
	return verr
}

func collect(ve *jsonschema.ValidationError, into **apperror.ValidationError) {
	if len(ve.Causes) == 0 {
		*into = (*into).Add(fieldName(ve.InstanceLocation), nil, ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, into)
	}
}

func fieldName(pointer string) string {
	field := strings.TrimPrefix(strings.TrimPrefix(pointer, "#"), "/")
	if field == "" {
		return "body"
	}
	return strings.ReplaceAll(field, "/", ".")
}
