package graph

import (
	"github.com/noah-isme/employee-graph-api/internal/models"
	"github.com/noah-isme/employee-graph-api/internal/service"
)

// Argument decoding helpers. graphql-go hands input objects over as
// map[string]interface{}; a key that is missing or carries an explicit null
// is treated as "not supplied", which is what makes updates sparse.

func optString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optFloat(args map[string]interface{}, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optBool(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

// optStringList returns nil when the key is absent or null, and a (possibly
// empty) slice when a list was supplied.
func optStringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringOr(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}

func intOr(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return fallback
}

func filterFromArgs(args map[string]interface{}) models.EmployeeFilter {
	raw, ok := args["filter"].(map[string]interface{})
	if !ok {
		return models.EmployeeFilter{}
	}
	return models.EmployeeFilter{
		Name:          stringOr(raw, "name", ""),
		Class:         stringOr(raw, "class", ""),
		Department:    stringOr(raw, "department", ""),
		MinAge:        optInt(raw, "minAge"),
		MaxAge:        optInt(raw, "maxAge"),
		MinAttendance: optFloat(raw, "minAttendance"),
		MaxAttendance: optFloat(raw, "maxAttendance"),
	}
}

func sortFromArgs(args map[string]interface{}) models.EmployeeSort {
	sort := models.EmployeeSort{}
	if v, ok := args["sortBy"].(models.EmployeeSortField); ok {
		sort.Field = v
	}
	if v, ok := args["sortOrder"].(models.SortOrder); ok {
		sort.Order = v
	}
	return sort
}

func createRequestFromArgs(input map[string]interface{}) service.CreateEmployeeRequest {
	return service.CreateEmployeeRequest{
		Name:       stringOr(input, "name", ""),
		Age:        optInt(input, "age"),
		Class:      optString(input, "class"),
		Subjects:   optStringList(input, "subjects"),
		Attendance: optFloat(input, "attendance"),
		Email:      optString(input, "email"),
		Phone:      optString(input, "phone"),
		Department: optString(input, "department"),
	}
}

func updateRequestFromArgs(input map[string]interface{}) service.UpdateEmployeeRequest {
	return service.UpdateEmployeeRequest{
		ID: stringOr(input, "id", ""),
		Patch: models.EmployeePatch{
			Name:       optString(input, "name"),
			Age:        optInt(input, "age"),
			Class:      optString(input, "class"),
			Subjects:   optStringList(input, "subjects"),
			Attendance: optFloat(input, "attendance"),
			Email:      optString(input, "email"),
			Phone:      optString(input, "phone"),
			Department: optString(input, "department"),
			Flagged:    optBool(input, "flagged"),
		},
	}
}
