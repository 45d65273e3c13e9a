// File: validation.go
// Title: Configuration Validation Implementation
// Description: Rule based validation of configuration values: required
//              keys, expected types, numeric bounds and allowed values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2026-10-18 v0.2.0: OneOf rule, deterministic error order, env aware

package config

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/exact/foundation/core/error"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool
	Type     string // "string", "int", "float", "bool", "duration"
	Min      *float64
	Max      *float64
	OneOf    []string
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// ValidationResult contains the results of configuration validation
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Bound is a helper for ValidationRule.Min and ValidationRule.Max
func Bound(v float64) *float64 {
	return &v
}

// Validate checks the configuration against rules, keys in sorted order
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := &ValidationResult{Valid: true}
	for _, key := range keys {
		if err := c.validateField(key, rules[key]); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		}
	}
	return result
}

// Err converts a failed result into a single error, or nil when valid
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return mdwerror.New("configuration invalid: "+strings.Join(r.Errors, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("errors", r.Errors)
}

func (c *Config) validateField(key string, rule ValidationRule) error {
	if !c.Has(key) {
		if rule.Required {
			return fmt.Errorf("required field '%s' is missing", key)
		}
		return nil
	}

	switch rule.Type {
	case "", "string":
	case "int", "float":
		v := c.GetFloat(key, nanSentinel)
		if v == nanSentinel {
			return fmt.Errorf("field '%s' must be a number", key)
		}
		if rule.Type == "int" && v != float64(int64(v)) {
			return fmt.Errorf("field '%s' must be an integer", key)
		}
		if rule.Min != nil && v < *rule.Min {
			return fmt.Errorf("field '%s' value %g is less than minimum %g", key, v, *rule.Min)
		}
		if rule.Max != nil && v > *rule.Max {
			return fmt.Errorf("field '%s' value %g is greater than maximum %g", key, v, *rule.Max)
		}
	case "bool":
		if c.GetBool(key, true) != c.GetBool(key, false) {
			return fmt.Errorf("field '%s' must be a boolean", key)
		}
	case "duration":
		if c.GetDuration(key, -1) < 0 {
			return fmt.Errorf("field '%s' must be a non-negative duration", key)
		}
	default:
		return fmt.Errorf("unknown validation type: %s", rule.Type)
	}

	if len(rule.OneOf) > 0 {
		value := strings.ToLower(c.GetString(key))
		for _, allowed := range rule.OneOf {
			if value == allowed {
				return nil
			}
		}
		return fmt.Errorf("field '%s' must be one of %s, got '%s'", key, strings.Join(rule.OneOf, ", "), value)
	}

	return nil
}

// nanSentinel marks "not convertible" in numeric checks
const nanSentinel = -1 << 62
