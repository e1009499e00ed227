// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docsmith pipeline:
// document configurations, module maps, and tool settings.
package types

// SectionDescriptor is one entry of a configuration's document outline. It
// names a section and the textual markers that bound it in the source.
type SectionDescriptor struct {
	// ID identifies the section within the outline. It is used as the module
	// key and as the filename component of the module file.
	ID string `json:"id" yaml:"id"`

	// Heading is the display title of the section.
	Heading string `json:"heading" yaml:"heading"`

	// StartPattern is a substring that marks the first line of the section.
	StartPattern string `json:"start_pattern" yaml:"start_pattern"`

	// EndPattern is a substring that marks the first line after the section.
	// Nil means the section extends to the end of the document.
	EndPattern *string `json:"end_pattern" yaml:"end_pattern"`

	// Description explains what the section covers.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasEnd reports whether the section has an end marker.
func (s SectionDescriptor) HasEnd() bool {
	return s.EndPattern != nil && *s.EndPattern != ""
}

// End returns the end marker, or "" when the section runs to end of document.
func (s SectionDescriptor) End() string {
	if s.EndPattern == nil {
		return ""
	}
	return *s.EndPattern
}

// Pattern returns a pointer to p, for populating optional end markers.
func Pattern(p string) *string {
	return &p
}

// Configuration describes how to split a named document into modules and
// how to title the assembled result.
type Configuration struct {
	// Filename is the assembled document's filename under dist/.
	Filename string `json:"filename" yaml:"filename"`

	// Prefix namespaces module files: {prefix}-{id}.md.
	Prefix string `json:"prefix" yaml:"prefix"`

	// Title is written as the top-level heading of the assembled document.
	Title string `json:"title" yaml:"title"`

	// Outline lists the document's sections. Its order is the fallback
	// assembly order when no module map exists.
	Outline []SectionDescriptor `json:"document_outline" yaml:"document_outline"`
}

// SectionIDs returns the outline's section ids in declared order.
func (c *Configuration) SectionIDs() []string {
	ids := make([]string, len(c.Outline))
	for i, s := range c.Outline {
		ids[i] = s.ID
	}
	return ids
}

// ModuleRecord carries per-module metadata in a module map.
type ModuleRecord struct {
	Heading      string  `json:"heading" yaml:"heading"`
	Description  string  `json:"description" yaml:"description"`
	StartPattern string  `json:"start_pattern" yaml:"start_pattern"`
	EndPattern   *string `json:"end_pattern" yaml:"end_pattern"`

	// Index is the section's position in the outline at split time.
	Index int `json:"index" yaml:"index"`
}

// ModuleMap records the authoritative assembly order for a configuration.
// It is regenerated wholesale on every split.
type ModuleMap struct {
	DocumentName string                  `json:"document_name" yaml:"document_name"`
	Prefix       string                  `json:"prefix" yaml:"prefix"`
	ModuleOrder  []string                `json:"module_order" yaml:"module_order"`
	Modules      map[string]ModuleRecord `json:"modules" yaml:"modules"`
}

// NewModuleMap returns an empty map for the named configuration.
func NewModuleMap(name, prefix string) *ModuleMap {
	return &ModuleMap{
		DocumentName: name,
		Prefix:       prefix,
		ModuleOrder:  []string{},
		Modules:      map[string]ModuleRecord{},
	}
}

// Add appends a section to the map's order and records its metadata.
func (m *ModuleMap) Add(index int, s SectionDescriptor) {
	m.ModuleOrder = append(m.ModuleOrder, s.ID)
	m.Modules[s.ID] = ModuleRecord{
		Heading:      s.Heading,
		Description:  s.Description,
		StartPattern: s.StartPattern,
		EndPattern:   s.EndPattern,
		Index:        index,
	}
}
