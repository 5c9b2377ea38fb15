package controller

// Schema is the JSON Schema (Draft 2020-12) for documents written by JSONUI.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://gooze.dev/winnow/output.schema.json",
  "title": "Winnow Output",
  "type": "object",
  "required": ["version", "mode"],
  "properties": {
    "version": { "type": "string" },
    "mode": { "enum": ["estimate", "minimize", "ledger", "unknown"] },
    "error": { "type": "string" },
    "estimation": {
      "type": "array",
      "items": { "$ref": "#/$defs/Estimation" }
    },
    "report": { "$ref": "#/$defs/Report" },
    "ledger": {
      "type": "array",
      "items": { "$ref": "#/$defs/LedgerState" }
    },
    "runs": {
      "type": "array",
      "items": { "$ref": "#/$defs/Run" }
    }
  },
  "$defs": {
    "IDs": {
      "type": "array",
      "items": { "type": "integer" }
    },
    "Estimation": {
      "type": "object",
      "required": ["suite", "path", "tests", "assertions", "mutants"],
      "properties": {
        "suite": { "type": "string" },
        "path": { "type": "string" },
        "tests": { "type": "integer", "minimum": 0 },
        "assertions": { "type": "integer", "minimum": 0 },
        "mutants": { "type": "integer", "minimum": 0 }
      }
    },
    "Report": {
      "type": "object",
      "required": [
        "run_id", "suite", "score", "known_mutants", "killed_mutants",
        "live_mutants", "unresolved_mutants", "uncovered_goals", "dropped_tests",
        "selections", "steps", "verdicts", "candidate_count", "retained_count"
      ],
      "properties": {
        "run_id": { "type": "string" },
        "suite": { "type": "string" },
        "score": { "type": "number", "minimum": 0, "maximum": 1 },
        "known_mutants": { "type": "integer", "minimum": 0 },
        "killed_mutants": { "$ref": "#/$defs/IDs" },
        "live_mutants": { "$ref": "#/$defs/IDs" },
        "unresolved_mutants": { "$ref": "#/$defs/IDs" },
        "uncovered_goals": {
          "type": "array",
          "items": { "type": "string" }
        },
        "dropped_tests": {
          "type": "array",
          "items": { "type": "string" }
        },
        "selections": {
          "type": "array",
          "items": { "$ref": "#/$defs/Selection" }
        },
        "steps": {
          "type": "array",
          "items": { "$ref": "#/$defs/Step" }
        },
        "verdicts": {
          "type": "object",
          "propertyNames": {
            "enum": ["killed", "survived", "pre_killed", "unresolved", "failed"]
          },
          "additionalProperties": { "type": "integer", "minimum": 0 }
        },
        "candidate_count": { "type": "integer", "minimum": 0 },
        "retained_count": { "type": "integer", "minimum": 0 }
      }
    },
    "Selection": {
      "type": "object",
      "required": ["test", "assertions", "rescued"],
      "properties": {
        "test": { "type": "string" },
        "assertions": { "$ref": "#/$defs/IDs" },
        "rescued": { "$ref": "#/$defs/IDs" }
      }
    },
    "Step": {
      "type": "object",
      "required": [
        "assertion", "test", "suite_unique", "test_load", "local_unique",
        "contribution", "pool_before", "pool_after"
      ],
      "properties": {
        "assertion": { "type": "integer" },
        "test": { "type": "string" },
        "suite_unique": { "type": "integer", "minimum": 0 },
        "test_load": { "type": "integer", "minimum": 0 },
        "local_unique": { "type": "integer", "minimum": 0 },
        "contribution": { "type": "integer", "minimum": 0 },
        "pool_before": { "type": "integer", "minimum": 0 },
        "pool_after": { "type": "integer", "minimum": 0 }
      }
    },
    "LedgerState": {
      "type": "object",
      "required": ["mutant", "timeouts", "exceptions", "disabled"],
      "properties": {
        "mutant": { "type": "integer" },
        "timeouts": { "type": "integer", "minimum": 0 },
        "exceptions": { "type": "integer", "minimum": 0 },
        "disabled": { "type": "boolean" }
      }
    },
    "Run": {
      "type": "object",
      "required": ["id", "suite", "started_at", "score", "known", "killed", "candidates", "retained", "dropped"],
      "properties": {
        "id": { "type": "string" },
        "suite": { "type": "string" },
        "started_at": { "type": "string" },
        "score": { "type": "number", "minimum": 0, "maximum": 1 },
        "known": { "type": "integer", "minimum": 0 },
        "killed": { "type": "integer", "minimum": 0 },
        "candidates": { "type": "integer", "minimum": 0 },
        "retained": { "type": "integer", "minimum": 0 },
        "dropped": { "type": "integer", "minimum": 0 }
      }
    }
  }
}`
