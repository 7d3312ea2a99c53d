package task

import (
	"github.com/goliatone/go-router"
)

// PriorityFilter is the tri-state priority query parameter: absent means no
// constraint, present but empty matches a null priority, otherwise exact match.
type PriorityFilter struct {
	Present bool
	Value   string
}

// AnyPriority does not constrain priority
func AnyPriority() PriorityFilter {
	return PriorityFilter{}
}

// NullPriority matches tasks without a priority
func NullPriority() PriorityFilter {
	return PriorityFilter{Present: true}
}

// PriorityEquals matches tasks with the given priority
func PriorityEquals(value string) PriorityFilter {
	return PriorityFilter{Present: true, Value: value}
}

// PriorityFilterFromQuery reads the filter from the request query string.
// Query cannot tell an absent key from an empty one, Queries can.
func PriorityFilterFromQuery(ctx router.Context, key string) PriorityFilter {
	value, ok := ctx.Queries()[key]
	if !ok {
		return AnyPriority()
	}
	return PriorityEquals(value)
}
