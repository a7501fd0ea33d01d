package schema

import (
	"fmt"
	"sort"

	"github.com/hkunchal47/formgen/model"
)

// AssignIDs stamps every field in the tree with its path-derived id:
// top-level fields get "field-<index>", and each conditional child gets
// "<parentID>-<conditionKey>-<index>", recursively. The result is
// deterministic for a given tree and unique across it, since condition
// keys are unique per field and indices are unique per array.
//
// Call it exactly once, after Validate has accepted the tree and before
// the schema is rendered, answered, or persisted.
func AssignIDs(fields []model.Field) {
	assignIDs(fields, "")
}

func assignIDs(fields []model.Field, prefix string) {
	for i := range fields {
		f := &fields[i]
		if prefix == "" {
			f.ID = fmt.Sprintf("field-%d", i)
		} else {
			f.ID = fmt.Sprintf("%s-%d", prefix, i)
		}

		if len(f.Conditions) == 0 {
			continue
		}
		keys := make([]string, 0, len(f.Conditions))
		for key := range f.Conditions {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			assignIDs(f.Conditions[key], f.ID+"-"+key)
		}
	}
}
