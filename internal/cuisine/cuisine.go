// Package cuisine holds the static two-level cuisine hierarchy used to widen
// filter queries: selecting a parent group matches the group name itself plus
// every cuisine under it.
package cuisine

import "sort"

// Hierarchy maps a parent group to its specific cuisines. The mapping is a
// strict tree of depth 2: no cuisine appears under two parents and no parent
// is itself a child.
var Hierarchy = map[string][]string{
	"Asian": {
		"Japanese", "Chinese", "Thai", "Korean", "Vietnamese", "Indian",
		"Filipino", "Indonesian", "Malaysian", "Singaporean", "Taiwanese",
		"Burmese", "Cambodian", "Laotian",
	},
	"European": {
		"Italian", "French", "Spanish", "Greek", "German", "British",
		"Irish", "Portuguese", "Dutch", "Belgian", "Swiss", "Austrian",
		"Scandinavian", "Swedish", "Norwegian", "Danish", "Polish",
		"Russian", "Ukrainian",
	},
	"Middle Eastern": {
		"Lebanese", "Turkish", "Israeli", "Persian", "Moroccan",
		"Egyptian", "Syrian", "Jordanian",
	},
	"Latin American": {
		"Mexican", "Brazilian", "Peruvian", "Argentinian", "Colombian",
		"Cuban", "Puerto Rican", "Venezuelan", "Chilean",
	},
	"African": {
		"Ethiopian", "South African", "Nigerian", "Kenyan",
	},
	"Caribbean": {
		"Jamaican", "Haitian", "Dominican", "Trinidadian", "Barbadian",
	},
}

// ForFilter expands a filter selection into the cuisine set to match.
// Selecting "Asian" returns Asian plus every Asian cuisine; selecting a
// specific cuisine returns just that cuisine.
func ForFilter(selected string) []string {
	children, ok := Hierarchy[selected]
	if !ok {
		return []string{selected}
	}
	out := make([]string, 0, len(children)+1)
	out = append(out, selected)
	out = append(out, children...)
	return out
}

// ParentOf returns the owning parent group for a cuisine, or "" when the
// cuisine is not part of the hierarchy.
func ParentOf(cuisine string) string {
	for parent, children := range Hierarchy {
		for _, c := range children {
			if c == cuisine {
				return parent
			}
		}
	}
	return ""
}

// Parents returns the sorted parent group names, for dropdowns that show
// groups above individually occurring cuisines.
func Parents() []string {
	parents := make([]string, 0, len(Hierarchy))
	for parent := range Hierarchy {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	return parents
}
