package bom

import "strings"

// Validate enforces the BOM schema over a decoded JSON value. Checks run in a
// fixed order and the first violation terminates validation, so the error
// message always names the earliest failed check: top-level array, non-empty,
// then per element in sequence order the presence/type group followed by the
// range checks. Elements are never reordered or deduplicated.
func Validate(value any) error {
	items, ok := value.([]any)
	if !ok {
		return schemaErrorf("bom must be a JSON array")
	}
	if len(items) == 0 {
		return schemaErrorf("bom array cannot be empty")
	}
	for idx, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			return schemaErrorf("bom item %d must be an object", idx)
		}
		if err := validateItem(idx, item); err != nil {
			return err
		}
	}
	return nil
}

// validateItem applies the per-element checks. All missing keys are collected
// into a single combined message before any type or range check runs, so a
// missing field is always reported ahead of a range violation on a different
// field of the same element.
func validateItem(idx int, item map[string]any) error {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := item[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return schemaErrorf("bom item %d missing required fields: %s", idx, strings.Join(missing, ", "))
	}

	for _, field := range stringFields {
		if _, ok := item[field].(string); !ok {
			return schemaErrorf("bom item %d: %s must be a string", idx, field)
		}
	}
	for _, field := range numericFields {
		if _, ok := item[field].(float64); !ok {
			return schemaErrorf("bom item %d: %s must be a number", idx, field)
		}
	}

	if qty := item["quantity"].(float64); qty <= 0 {
		return schemaErrorf("bom item %d: quantity must be positive", idx)
	}
	if hours := item["hoursPerMonth"].(float64); hours <= 0 || hours > MaxHoursPerMonth {
		return schemaErrorf("bom item %d: hoursPerMonth must be between 1 and %d", idx, MaxHoursPerMonth)
	}
	return nil
}
