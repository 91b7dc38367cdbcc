// Package query provides SQL query construction utilities with view-to-column
// projection mapping and automatic parameter numbering.
package query

import "strings"

// ProjectionMap maps view field names to aliased table columns for a single table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	views   []string
	columns map[string]string
}

// NewProjectionMap creates a projection for the given schema-qualified table and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column under a view field name. Registration order
// determines column order in Columns and ColumnList.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	p.views = append(p.views, view)
	p.columns[view] = p.alias + "." + column
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the schema-qualified table reference with its alias.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a view field name to its aliased column. Unknown view
// names are returned as-is.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.columns[view]; ok {
		return col
	}
	return view
}

// Columns returns all projected columns as a comma-separated SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns all projected columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.views))
	for i, view := range p.views {
		list[i] = p.columns[view]
	}
	return list
}
