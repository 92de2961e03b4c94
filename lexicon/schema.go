package lexicon

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// validate marshals a parsed document back to JSON and checks it against the
// given schema. Any violation fails the load.
func validate(schema string, doc interface{}) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal for validation: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(docJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("- %s", e))
		}
		return fmt.Errorf("table validation failed:\n%s", strings.Join(msgs, "\n"))
	}
	return nil
}

const intentsSchema = `{
  "type": "object",
  "required": ["groups"],
  "properties": {
    "groups": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["intent", "patterns"],
        "properties": {
          "intent": {"type": "string", "minLength": 1},
          "patterns": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["value"],
              "properties": {
                "kind": {"enum": ["substring", "prefix", "regex", ""]},
                "value": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    }
  }
}`

const tonesSchema = `{
  "type": "object",
  "required": ["positive", "negative", "apology", "support", "laugh", "slang_markers", "formal_markers"],
  "properties": {
    "positive": {"$ref": "#/definitions/words"},
    "negative": {"$ref": "#/definitions/words"},
    "apology": {"$ref": "#/definitions/words"},
    "support": {"$ref": "#/definitions/words"},
    "laugh": {"$ref": "#/definitions/words"},
    "slang_markers": {"$ref": "#/definitions/words"},
    "formal_markers": {"$ref": "#/definitions/words"}
  },
  "definitions": {
    "words": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    }
  }
}`

const slangSchema = `{
  "type": "object",
  "required": ["languages"],
  "properties": {
    "languages": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["entries", "inject"],
        "properties": {
          "entries": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["slang", "meaning"],
              "properties": {
                "slang": {"type": "string", "minLength": 1},
                "meaning": {"type": "string"}
              }
            }
          },
          "inject": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["intent", "tones", "probability", "pool"],
              "properties": {
                "intent": {"type": "string", "minLength": 1},
                "tones": {"enum": ["casual", "empathetic", "any"]},
                "probability": {"type": "number", "minimum": 0, "maximum": 1},
                "pool": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "context": {"type": "array", "items": {"type": "string"}},
                "context_pool": {"type": "array", "items": {"type": "string"}}
              }
            }
          }
        }
      }
    }
  }
}`

const templatesSchema = `{
  "type": "object",
  "required": ["rich", "greeting_patterns", "intent_emoji", "tone_emoji"],
  "properties": {
    "rich": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "minProperties": 1,
        "additionalProperties": {
          "type": "object",
          "required": ["neutral"],
          "additionalProperties": {"type": "string", "minLength": 1}
        }
      }
    },
    "greeting_patterns": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    },
    "intent_emoji": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    },
    "tone_emoji": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    }
  }
}`
