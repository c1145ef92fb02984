package taxonomy

import (
	"fmt"
	"strings"
)

// Category is one node of a library taxonomy. Each node becomes one
// directory; children are created beneath it. Sibling order is purely
// declarative, creation is order-independent.
type Category struct {
	Name     string     `yaml:"name" json:"name"`
	Children []Category `yaml:"children,omitempty" json:"children,omitempty"`
}

// Node is a flattened category with its path relative to the scaffold root.
type Node struct {
	Name    string
	RelPath string
	Depth   int
}

// Characters that cannot appear in a single path segment on the cabinet's
// filesystem. Forward and back slashes are rejected everywhere so a category
// can never smuggle in extra path levels.
const illegalSegmentChars = `<>:"/\|?*`

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
}

// ValidateName reports whether name is usable as a single path segment.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name is empty")
	}
	if strings.ContainsAny(name, illegalSegmentChars) {
		return fmt.Errorf("category name %q contains illegal characters", name)
	}
	for _, r := range name {
		if r < 0x20 {
			return fmt.Errorf("category name %q contains control characters", name)
		}
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return fmt.Errorf("category name %q ends with a dot or space", name)
	}
	if reservedNames[strings.ToUpper(name)] {
		return fmt.Errorf("category name %q is reserved", name)
	}
	return nil
}

// Validate checks every name in the forest and that no two siblings collide.
func Validate(categories []Category) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if err := ValidateName(c.Name); err != nil {
			return err
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return fmt.Errorf("duplicate sibling category %q", c.Name)
		}
		seen[key] = true

		if err := Validate(c.Children); err != nil {
			return fmt.Errorf("under %q: %w", c.Name, err)
		}
	}
	return nil
}

// Flatten returns every node of the forest with its derived relative path.
// The path of a node depends only on its ancestor chain, never on the order
// siblings are visited.
func Flatten(categories []Category) []Node {
	var nodes []Node
	flattenInto(categories, "", 0, &nodes)
	return nodes
}

func flattenInto(categories []Category, prefix string, depth int, out *[]Node) {
	for _, c := range categories {
		rel := c.Name
		if prefix != "" {
			rel = prefix + "/" + c.Name
		}
		*out = append(*out, Node{Name: c.Name, RelPath: rel, Depth: depth})
		flattenInto(c.Children, rel, depth+1, out)
	}
}

// Count returns the total number of nodes in the forest.
func Count(categories []Category) int {
	total := len(categories)
	for _, c := range categories {
		total += Count(c.Children)
	}
	return total
}
