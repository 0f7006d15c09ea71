package site

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GuideSidebar is the name of the documentation sidebar.
const GuideSidebar = "guiaSidebar"

const (
	ItemDoc      = "doc"
	ItemCategory = "category"
)

// SidebarItem is either a document reference or a category grouping documents.
type SidebarItem struct {
	Type      string        `yaml:"type"`
	ID        string        `yaml:"id"`
	Label     string        `yaml:"label"`
	LabelKey  string        `yaml:"label_key"`
	Collapsed bool          `yaml:"collapsed"`
	Items     []SidebarItem `yaml:"items"`
}

// UnmarshalYAML accepts a bare string as shorthand for a doc item.
func (it *SidebarItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*it = SidebarItem{Type: ItemDoc, ID: node.Value}
		return nil
	}
	type plain SidebarItem
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Type == "" {
		p.Type = ItemDoc
	}
	*it = SidebarItem(p)
	return nil
}

// Sidebar is an ordered, hand-authored documentation tree.
type Sidebar struct {
	Name  string
	Items []SidebarItem
}

// Sidebars loads the embedded sidebar definitions.
func Sidebars() (map[string]Sidebar, error) {
	raw, err := defaults.ReadFile("sidebars.yaml")
	if err != nil {
		return nil, fmt.Errorf("site: read sidebars: %w", err)
	}
	return parseSidebars(raw)
}

func parseSidebars(raw []byte) (map[string]Sidebar, error) {
	var doc map[string][]SidebarItem
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("site: parse sidebars: %w", err)
	}
	out := make(map[string]Sidebar, len(doc))
	for name, items := range doc {
		sb := Sidebar{Name: name, Items: items}
		if err := sb.validate(); err != nil {
			return nil, err
		}
		out[name] = sb
	}
	return out, nil
}

// Guide returns the documentation sidebar.
func Guide() (Sidebar, error) {
	all, err := Sidebars()
	if err != nil {
		return Sidebar{}, err
	}
	sb, ok := all[GuideSidebar]
	if !ok {
		return Sidebar{}, fmt.Errorf("%w: sidebar %q not declared", ErrInvalidConfig, GuideSidebar)
	}
	return sb, nil
}

func (s Sidebar) validate() error {
	seen := map[string]struct{}{}
	var walk func(items []SidebarItem) error
	walk = func(items []SidebarItem) error {
		for _, it := range items {
			switch it.Type {
			case ItemDoc:
				if it.ID == "" {
					return fmt.Errorf("%w: sidebar %s: doc item without id", ErrInvalidConfig, s.Name)
				}
				if _, dup := seen[it.ID]; dup {
					return fmt.Errorf("%w: sidebar %s: duplicate doc %q", ErrInvalidConfig, s.Name, it.ID)
				}
				seen[it.ID] = struct{}{}
			case ItemCategory:
				if it.Label == "" && it.LabelKey == "" {
					return fmt.Errorf("%w: sidebar %s: category without label", ErrInvalidConfig, s.Name)
				}
				if err := walk(it.Items); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: sidebar %s: unknown item type %q", ErrInvalidConfig, s.Name, it.Type)
			}
		}
		return nil
	}
	return walk(s.Items)
}

// DocIDs returns every document id in reading order.
func (s Sidebar) DocIDs() []string {
	var ids []string
	var walk func(items []SidebarItem)
	walk = func(items []SidebarItem) {
		for _, it := range items {
			if it.Type == ItemCategory {
				walk(it.Items)
				continue
			}
			ids = append(ids, it.ID)
		}
	}
	walk(s.Items)
	return ids
}

// Contains reports whether id is declared in the sidebar.
func (s Sidebar) Contains(id string) bool {
	for _, d := range s.DocIDs() {
		if d == id {
			return true
		}
	}
	return false
}

// Neighbors returns the previous and next doc ids around id; empty strings mark the ends.
func (s Sidebar) Neighbors(id string) (prev, next string) {
	ids := s.DocIDs()
	for i, d := range ids {
		if d != id {
			continue
		}
		if i > 0 {
			prev = ids[i-1]
		}
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		return prev, next
	}
	return "", ""
}

// CategoryOf returns the top-level category holding id, or nil for root-level docs.
func (s Sidebar) CategoryOf(id string) *SidebarItem {
	for i := range s.Items {
		it := &s.Items[i]
		if it.Type != ItemCategory {
			continue
		}
		for _, d := range (Sidebar{Items: it.Items}).DocIDs() {
			if d == id {
				return it
			}
		}
	}
	return nil
}
