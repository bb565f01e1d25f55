package catalog

import (
	"sort"
	"strings"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// DuplicateKind says which key a duplicate group shares.
type DuplicateKind string

const (
	DuplicateByName  DuplicateKind = "name"
	DuplicateByModel DuplicateKind = "manufacturer_model"
)

// DuplicateGroup lists records sharing a normalized key.
type DuplicateGroup struct {
	Kind DuplicateKind `json:"kind"`
	Key  string        `json:"key"`
	IDs  []int64       `json:"ids"`
}

// FindDuplicates groups records by case-insensitive trimmed name and by
// manufacturer plus model. Only groups with more than one record are
// returned, sorted by kind then key.
func FindDuplicates(records []model.Aircraft) []DuplicateGroup {
	byName := map[string][]int64{}
	byModel := map[string][]int64{}
	for i := range records {
		r := &records[i]
		if k := normalizeKey(r.Name); k != "" {
			byName[k] = append(byName[k], r.ID)
		}
		m, mdl := normalizeKey(str(r.Manufacturer)), normalizeKey(str(r.Model))
		if m != "" && mdl != "" {
			key := m + " | " + mdl
			byModel[key] = append(byModel[key], r.ID)
		}
	}

	var groups []DuplicateGroup
	collect := func(kind DuplicateKind, idx map[string][]int64) {
		for key, ids := range idx {
			if len(ids) > 1 {
				groups = append(groups, DuplicateGroup{Kind: kind, Key: key, IDs: ids})
			}
		}
	}
	collect(DuplicateByName, byName)
	collect(DuplicateByModel, byModel)

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Kind != groups[j].Kind {
			return groups[i].Kind < groups[j].Kind
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
