package export

// BuildDocumentJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// one exported document, as a generic map. Exports are validated against it
// before leaving the process.
func BuildDocumentJSONSchema(includeFields bool) map[string]any {
	props := map[string]any{
		"filename": map[string]any{"type": "string", "minLength": 1},
		"text":     map[string]any{"type": "string"},
	}
	if includeFields {
		props["emails"] = stringArrayProp()
		props["phones"] = stringArrayProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"filename", "text"},
	}
}

func stringArrayProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}
