package category

import (
	"sort"
	"strings"
)

// SortForTree orders categories by sort order, ties broken by English name.
// Callers run this before BuildTree so sibling order is deterministic.
func SortForTree(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].NameEn < categories[j].NameEn
	})
}

// BuildTree folds a flat category list into a forest. Every input row appears
// exactly once: rows with a resolvable parent become children, everything else
// (null parent, dangling parent reference) becomes a root. The input is never
// mutated; nodes are shallow-copied into the new structure.
func BuildTree(flat []*Category) []*Category {
	byID := make(map[string]*Category, len(flat))
	clones := make([]*Category, 0, len(flat))

	for _, c := range flat {
		clone := *c
		clone.Children = nil
		byID[clone.ID] = &clone
		clones = append(clones, &clone)
	}

	roots := make([]*Category, 0)
	for _, c := range clones {
		if c.ParentCategoryID != nil && *c.ParentCategoryID != c.ID {
			if parent, ok := byID[*c.ParentCategoryID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// WouldCreateCycle reports whether assigning proposedParentID as the parent of
// categoryID would make the category its own ancestor. That is the case when
// the proposed parent is the category itself or any of its descendants in the
// tree formed by all. An empty proposed parent (move to root) never cycles.
func WouldCreateCycle(categoryID, proposedParentID string, all []*Category) bool {
	if proposedParentID == "" {
		return false
	}
	if proposedParentID == categoryID {
		return true
	}

	childrenOf := make(map[string][]string, len(all))
	for _, c := range all {
		if c.ParentCategoryID == nil {
			continue
		}
		childrenOf[*c.ParentCategoryID] = append(childrenOf[*c.ParentCategoryID], c.ID)
	}

	// DFS over the subtree rooted at categoryID.
	stack := []string{categoryID}
	seen := map[string]bool{categoryID: true}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range childrenOf[id] {
			if child == proposedParentID {
				return true
			}
			if !seen[child] {
				seen[child] = true
				stack = append(stack, child)
			}
		}
	}
	return false
}

// FilterTree keeps nodes whose English name, Arabic name or description
// contains the query (case-insensitive), plus every ancestor of a match so the
// path context survives. A directly matched node keeps its full subtree; a node
// kept only because of a matching descendant keeps just the filtered children.
func FilterTree(tree []*Category, query string) []*Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tree
	}
	return filterNodes(tree, q)
}

func filterNodes(nodes []*Category, q string) []*Category {
	kept := make([]*Category, 0, len(nodes))
	for _, n := range nodes {
		if matchesQuery(n, q) {
			kept = append(kept, n)
			continue
		}

		children := filterNodes(n.Children, q)
		if len(children) > 0 {
			clone := *n
			clone.Children = children
			kept = append(kept, &clone)
		}
	}
	return kept
}

func matchesQuery(c *Category, q string) bool {
	if strings.Contains(strings.ToLower(c.NameEn), q) {
		return true
	}
	if c.NameAr != nil && strings.Contains(strings.ToLower(*c.NameAr), q) {
		return true
	}
	if c.Description != nil && strings.Contains(strings.ToLower(*c.Description), q) {
		return true
	}
	return false
}

// FlattenForSelect produces the depth-first list backing a parent-picker
// dropdown, with names indented two spaces per level. When excludeID is given,
// that node and its whole subtree are omitted so a category can never be offered
// as its own descendant. This complements WouldCreateCycle; both run.
func FlattenForSelect(tree []*Category, excludeID string) []*Category {
	out := make([]*Category, 0)
	flattenInto(&out, tree, excludeID, 0)
	return out
}

func flattenInto(out *[]*Category, nodes []*Category, excludeID string, depth int) {
	for _, n := range nodes {
		if excludeID != "" && n.ID == excludeID {
			continue
		}

		clone := *n
		clone.NameEn = strings.Repeat("  ", depth) + n.NameEn
		clone.Children = nil
		*out = append(*out, &clone)

		flattenInto(out, n.Children, excludeID, depth+1)
	}
}
