// Package query turns request query parameters into parameterized SQL.
//
// It normalizes JSON:API filter keys, compiles amenity filters against the
// domain.Schema, accumulates predicates and positional binds in a Builder,
// and pages through result sets. User values only ever reach SQL as binds;
// the only identifiers interpolated into statements come from the schema.
package query
