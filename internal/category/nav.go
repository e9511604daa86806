// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import "folio/internal/models"

// BasePath is the portfolio route that category paths hang off.
const BasePath = "/portfolio"

// NavNode is one entry in the portfolio navigation. Leaves have no
// Children; the field is omitted from JSON rather than sent empty.
type NavNode struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Path     string    `json:"path"`
	Children []NavNode `json:"children,omitempty"`
}

// BuildNavigation turns a flat list of category names into the two-level
// navigation tree. The root "All" entry is always first and the "all"
// name itself is skipped. Top-level nodes follow the order in which their
// parent segment is first seen, so a pre-sorted input gives an
// alphabetical tree. A child whose parent was never created on its own
// still gets a synthesized parent node. Duplicate names are ignored.
func BuildNavigation(names []string) []NavNode {
	nav := []NavNode{{Name: models.CategoryAll, Label: "All", Path: BasePath}}

	index := map[string]int{models.CategoryAll: 0} // parent name -> position in nav
	seen := make(map[string]bool)

	ensureParent := func(parent string) int {
		if i, ok := index[parent]; ok {
			return i
		}
		nav = append(nav, NavNode{
			Name:  parent,
			Label: Label(parent),
			Path:  BasePath + "/" + parent,
		})
		index[parent] = len(nav) - 1
		return len(nav) - 1
	}

	for _, raw := range names {
		name := Normalize(raw)
		if name == "" || name == models.CategoryAll || seen[name] {
			continue
		}
		seen[name] = true

		parent, child, nested := Split(name)
		i := ensureParent(parent)
		if !nested {
			continue
		}
		nav[i].Children = append(nav[i].Children, NavNode{
			Name:  name,
			Label: Label(child),
			Path:  BasePath + "/" + name,
		})
	}

	return nav
}
