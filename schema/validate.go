package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hkunchal47/formgen/model"
)

var validTypesHint = func() string {
	names := make([]string, len(model.FieldTypes))
	for i, t := range model.FieldTypes {
		names[i] = string(t)
	}
	return "Use one of: " + strings.Join(names, ", ")
}()

// Validate checks a candidate schema as decoded from untrusted JSON
// (maps, slices, primitives) against the structural rules, collecting
// every violation instead of stopping at the first. It never panics on
// malformed input; an empty result means the candidate is safe to
// promote to a model.FormSchema.
//
// Errors come out in pre-order: root checks first, then each field in
// array order, each field's own checks before its condition branches.
func Validate(candidate any) []model.SchemaError {
	var errs []model.SchemaError

	root, ok := candidate.(map[string]any)
	if !ok {
		return append(errs, model.SchemaError{
			Message:    "Schema must be a JSON object",
			Suggestion: `Provide an object with "title" and "fields" properties`,
		})
	}

	rawTitle, hasTitle := root["title"]
	title, titleIsString := rawTitle.(string)
	switch {
	case !hasTitle || (titleIsString && title == ""):
		errs = append(errs, model.SchemaError{
			Message:    "Schema must have a title",
			Suggestion: `Add a "title" property to the root schema`,
		})
	case !titleIsString:
		errs = append(errs, model.SchemaError{
			Message:    "Schema title must be a string",
			Suggestion: `Replace the "title" value with a string`,
		})
	}

	fields, ok := root["fields"].([]any)
	if !ok {
		// Cannot recurse into a non-array; report what was found so far.
		return append(errs, model.SchemaError{
			Message:    "Schema must have a fields array",
			Suggestion: `Add a "fields" array to the schema`,
		})
	}

	for i, f := range fields {
		errs = validateField(f, fmt.Sprintf("fields[%d]", i), errs)
	}
	return errs
}

func validateField(node any, path string, errs []model.SchemaError) []model.SchemaError {
	field, ok := node.(map[string]any)
	if !ok {
		return append(errs, model.SchemaError{
			Message:    fmt.Sprintf("Field at %s is not an object", path),
			Path:       path,
			Suggestion: "Replace it with a field object carrying at least a type and a label",
		})
	}

	rawType, hasType := field["type"]
	typ, _ := rawType.(string)
	switch {
	case !hasType:
		errs = append(errs, model.SchemaError{
			Message:    fmt.Sprintf("Field at %s is missing type", path),
			Path:       path,
			Suggestion: `Add a "type" property to the field`,
		})
	case !model.FieldType(typ).Valid():
		errs = append(errs, model.SchemaError{
			Message:    fmt.Sprintf("Invalid field type %q at %s", rawType, path),
			Path:       path,
			Suggestion: validTypesHint,
		})
	}

	if label, _ := field["label"].(string); label == "" {
		errs = append(errs, model.SchemaError{
			Message:    fmt.Sprintf("Field at %s is missing label", path),
			Path:       path,
			Suggestion: `Add a "label" property to the field`,
		})
	}

	options, _ := field["options"].([]any)
	if model.FieldType(typ).RequiresOptions() && len(options) == 0 {
		errs = append(errs, model.SchemaError{
			Message:    fmt.Sprintf("Field type %q at %s requires options", typ, path),
			Path:       path,
			Suggestion: `Add an "options" array with at least one option`,
		})
	}

	conditions, _ := field["conditions"].(map[string]any)
	for _, key := range conditionKeys(options, conditions) {
		// Non-array condition values are tolerated as partially-formed
		// branches and skipped.
		children, ok := conditions[key].([]any)
		if !ok {
			continue
		}
		for j, child := range children {
			errs = validateField(child, fmt.Sprintf("%s.conditions.%s[%d]", path, key, j), errs)
		}
	}
	return errs
}

// conditionKeys orders a field's condition keys for traversal: keys that
// match declared options come first, in option order, then any leftovers
// sorted. JSON objects decode into unordered maps, so the options list is
// the only document-order signal available.
func conditionKeys(options []any, conditions map[string]any) []string {
	if len(conditions) == 0 {
		return nil
	}

	keys := make([]string, 0, len(conditions))
	seen := make(map[string]bool, len(conditions))
	for _, o := range options {
		opt, ok := o.(string)
		if !ok {
			continue
		}
		if _, present := conditions[opt]; present && !seen[opt] {
			keys = append(keys, opt)
			seen[opt] = true
		}
	}

	rest := make([]string, 0, len(conditions)-len(keys))
	for key := range conditions {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
