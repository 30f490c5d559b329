package sessions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "session.schema.json"

// recordSchema describes a persisted session. The lists value mirrors
// todo.List and the flash value mirrors a flash notice.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "created_at", "expires_at", "values"],
  "additionalProperties": false,
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "created_at": {"type": "string", "format": "date-time"},
    "expires_at": {"type": "string", "format": "date-time"},
    "values": {
      "type": "object",
      "properties": {
        "lists": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["id", "name", "todos"],
            "properties": {
              "id": {"type": "integer", "minimum": 1},
              "name": {"type": "string"},
              "todos": {
                "type": ["array", "null"],
                "items": {
                  "type": "object",
                  "required": ["id", "name", "completed"],
                  "properties": {
                    "id": {"type": "integer", "minimum": 1},
                    "name": {"type": "string"},
                    "completed": {"type": "boolean"}
                  }
                }
              }
            }
          }
        },
        "flash": {
          "type": "object",
          "required": ["kind", "key"],
          "properties": {
            "kind": {"enum": ["success", "info", "warning", "error"]},
            "key": {"type": "string", "minLength": 1}
          }
        }
      }
    }
  }
}`

type record struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	ExpiresAt time.Time                  `json:"expires_at"`
	Values    map[string]json.RawMessage `json:"values"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func sessionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(recordSchema)); err != nil {
			schemaErr = fmt.Errorf("add session schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile session schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Encode serializes a session for a registry.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("session is required")
	}
	values := s.Values
	if values == nil {
		values = map[string]json.RawMessage{}
	}
	data, err := json.Marshal(record{
		ID:        s.ID,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
		Values:    values,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode parses and validates a registry record.
// Failures wrap ErrInvalidRecord.
func Decode(data []byte) (*Session, error) {
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode session: %w", ErrInvalidRecord, err)
	}
	if rec.Values == nil {
		rec.Values = map[string]json.RawMessage{}
	}
	return &Session{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		Values:    rec.Values,
	}, nil
}

func validate(data []byte) error {
	schema, err := sessionSchema()
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("decode session document: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid session record: %w", err)
	}
	return nil
}
