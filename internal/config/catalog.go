package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of category -> package list while keeping
// the order in which categories appear in the document.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: catalog must be a mapping of category to package list", node.Line)
	}

	categories := make([]Category, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	// Content holds key and value nodes alternately
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return fmt.Errorf("line %d: empty category name", keyNode.Line)
		}
		if seen[name] {
			return fmt.Errorf("line %d: duplicate category %q", keyNode.Line, name)
		}
		seen[name] = true

		var packages []string
		if err := valueNode.Decode(&packages); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		for idx, pkg := range packages {
			pkg = strings.TrimSpace(pkg)
			if pkg == "" {
				return fmt.Errorf("category %q: empty package name at position %d", name, idx)
			}
			packages[idx] = pkg
		}

		categories = append(categories, Category{Name: name, Packages: packages})
	}

	c.Categories = categories
	return nil
}

// MarshalYAML writes the catalog back as an ordered mapping.
func (c Catalog) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range c.Categories {
		list := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, pkg := range cat.Packages {
			list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pkg})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cat.Name},
			list,
		)
	}
	return node, nil
}

// Len returns the total number of package entries, duplicates included.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Packages)
	}
	return n
}

// Distinct returns every package name once, in first-appearance order.
func (c Catalog) Distinct() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cat := range c.Categories {
		for _, pkg := range cat.Packages {
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			names = append(names, pkg)
		}
	}
	return names
}

// Select returns a catalog restricted to the named categories, keeping the
// catalog order. An empty selection returns the catalog unchanged.
// Category names are matched case-insensitively.
func (c Catalog) Select(names []string) (Catalog, error) {
	if len(names) == 0 {
		return c, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var selected Catalog
	for _, cat := range c.Categories {
		key := strings.ToLower(cat.Name)
		if wanted[key] {
			selected.Categories = append(selected.Categories, cat)
			delete(wanted, key)
		}
	}

	if len(wanted) > 0 {
		var unknown []string
		for _, n := range names {
			if wanted[strings.ToLower(strings.TrimSpace(n))] {
				unknown = append(unknown, n)
			}
		}
		return Catalog{}, fmt.Errorf("unknown categories: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}
