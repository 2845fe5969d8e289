package persistence

import (
	"slices"
	"strings"

	"gorm.io/gorm/clause"
)

// ordering is a column whitelist for ORDER BY built from user input.
// Unknown columns and directions fall back to the defaults, so nothing
// the caller sends reaches the SQL text unchecked.
type ordering struct {
	columns  []string
	fallback string
	desc     bool
}

var canonicalProductOrdering = ordering{
	columns: []string{
		"title", "price", "status", "variant_count",
		"external_id", "source_platform", "created_at", "updated_at",
	},
	fallback: "title",
}

// clauses orders by the requested column and breaks ties on id.
func (o ordering) clauses(column, dir string) clause.OrderBy {
	column = strings.TrimSpace(column)
	if !slices.Contains(o.columns, column) {
		column = o.fallback
	}

	desc := o.desc
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "ASC":
		desc = false
	case "DESC":
		desc = true
	}

	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: column}, Desc: desc},
		{Column: clause.Column{Name: "id"}},
	}}
}
