package bom

import "encoding/json"

// ParseResponse turns raw assistant text into a validated, ordered Bill of
// Materials. The three failure kinds stay distinct: *ExtractionError when no
// candidate substring exists, *ValidationError wrapping the decoder error when
// the candidate is not well-formed JSON, and *ValidationError with a schema
// message when the decoded value violates the item contract.
func ParseResponse(text string) ([]LineItem, error) {
	candidate, err := ExtractCandidateJSON(text)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, &ValidationError{msg: "bom: invalid JSON format: " + err.Error(), cause: err}
	}

	if err := Validate(value); err != nil {
		return nil, err
	}

	// Validate guarantees the shape below; conversion preserves source order
	// and numeric fidelity (a quantity written as 1.5 stays 1.5).
	items := value.([]any)
	out := make([]LineItem, 0, len(items))
	for _, raw := range items {
		obj := raw.(map[string]any)
		out = append(out, LineItem{
			ServiceName:   obj["serviceName"].(string),
			SKU:           obj["sku"].(string),
			Quantity:      obj["quantity"].(float64),
			Region:        obj["region"].(string),
			ARMRegionName: obj["armRegionName"].(string),
			HoursPerMonth: obj["hoursPerMonth"].(float64),
		})
	}
	return out, nil
}
