package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/virtio-magma/magmagen/internal/dialect"
)

// ErrInvalidWidth is returned when a dialect has no wire type for a resolved width.
var ErrInvalidWidth = errors.New("invalid type width")

const (
	// pointerMarker anywhere in a type name makes it pointer-sized on the wire.
	pointerMarker = "*"
	// defaultWidth is used for every type without a more specific rule.
	defaultWidth = 8
)

// typeWidths serves as the central source of truth for fixed-width types.
var typeWidths = map[string]int{
	"uint32_t":       4,
	"int32_t":        4,
	"magma_bool_t":   1,
	"magma_handle_t": 4,
}

// TypeResolver maps abstract interface type names to wire integer types.
type TypeResolver struct {
	dialect dialect.Dialect
	extra   map[string]int
}

// NewTypeResolver returns a resolver for d. extra adds exact-name widths that are
// consulted after the built-in rules and before the default width.
func NewTypeResolver(d dialect.Dialect, extra map[string]int) *TypeResolver {
	return &TypeResolver{dialect: d, extra: extra}
}

// Width returns the wire width in bytes of an abstract type.
// Pointers come first, then the built-in table, then configured types.
func (r *TypeResolver) Width(t string) int {
	if strings.Contains(t, pointerMarker) {
		return 8
	}
	if w, ok := typeWidths[t]; ok {
		return w
	}
	if w, ok := r.extra[t]; ok {
		return w
	}
	return defaultWidth
}

// WireType returns the dialect spelling of the wire integer for an abstract type.
func (r *TypeResolver) WireType(t string) (string, error) {
	return r.wireTypeForWidth(r.Width(t))
}

func (r *TypeResolver) wireTypeForWidth(width int) (string, error) {
	wt, ok := r.dialect.WireType(width)
	if !ok {
		return "", fmt.Errorf("%w: %d bytes in %s", ErrInvalidWidth, width, r.dialect)
	}
	return wt, nil
}
