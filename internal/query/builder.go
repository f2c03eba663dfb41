package query

import (
	"fmt"
	"strings"
)

// Builder accumulates predicates, assignments and positional binds ($1, $2, ...).
// Values are never interpolated into statement text.
type Builder struct {
	predicates  []string
	assignments []string
	args        []any
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bind records v and returns its placeholder.
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Where appends "AND pred" with the single ? in pred replaced by the bind for v.
func (b *Builder) Where(pred string, v any) *Builder {
	b.predicates = append(b.predicates, "AND "+strings.Replace(pred, "?", b.Bind(v), 1))
	return b
}

// Raw appends a fragment that already carries its own leading AND.
// Only schema-derived text may be passed here. Empty fragments are dropped.
func (b *Builder) Raw(fragment string) *Builder {
	if fragment != "" {
		b.predicates = append(b.predicates, fragment)
	}
	return b
}

// Select renders base followed by WHERE 1=1 and every predicate in order.
func (b *Builder) Select(base string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\nWHERE 1=1")
	for _, p := range b.predicates {
		sb.WriteString("\n  ")
		sb.WriteString(p)
	}
	return sb.String()
}

// Assign records "col = $n" for an UPDATE SET list.
func (b *Builder) Assign(col string, v any) *Builder {
	b.assignments = append(b.assignments, col+" = "+b.Bind(v))
	return b
}

// HasAssignments reports whether any column was assigned.
func (b *Builder) HasAssignments() bool {
	return len(b.assignments) > 0
}

// SetClause renders the accumulated assignments as "A = $1, B = $2".
func (b *Builder) SetClause() string {
	return strings.Join(b.assignments, ", ")
}

// Args returns the bind values in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}
