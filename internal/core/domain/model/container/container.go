// Package container contains the Container entity: a physical shipping unit
// into which pooled items are allocated during a packing session.
package container

import (
	"errors"
	"fmt"

	"packing/internal/pkg/errs"
)

var (
	// ErrContainerIsNotConstructed is returned when a Container was not created
	// through the NewContainer factory function.
	ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer constructor")

	// ErrContainerIsNotOpen is returned when a mutation is attempted on a
	// container whose contents are already frozen.
	ErrContainerIsNotOpen = errors.New("container is not open")

	// ErrContainerHasNoLines is returned when an empty container is completed.
	ErrContainerHasNoLines = errors.New("container has no lines")

	// ErrLineNotFound is returned when the requested item has no line in the container.
	ErrLineNotFound = errors.New("line not found in container")
)

// SourcePortion records how much of a container line is owed to one source order.
type SourcePortion struct {
	// OrderID is the contributing source order's identifier.
	OrderID string

	// Qty is the portion quantity, always positive.
	Qty int
}

// Line is one allocated item inside a container, with its per-order breakdown.
// A container holds at most one line per item key; repeated assignments merge
// additively.
type Line struct {
	itemKey string
	qty     int
	sources []SourcePortion
}

// ItemKey returns the product key of the line.
func (l Line) ItemKey() string {
	return l.itemKey
}

// Qty returns the total allocated quantity of the line.
func (l Line) Qty() int {
	return l.qty
}

// Sources returns the per-order breakdown in contribution order.
// The returned slice is a copy.
func (l Line) Sources() []SourcePortion {
	sources := make([]SourcePortion, len(l.sources))
	copy(sources, l.sources)
	return sources
}

// Container is a physical shipping unit. Its identifier is unique within the
// packing session that created it.
//
// Invariants:
//   - Lines can only change while the container is Open
//   - A Completed container is immutable except for the Labeled marker
//   - At most one line exists per item key
type Container struct {
	id     string
	lines  []Line
	status Status

	isConstructed bool
}

// NewContainer creates an open, empty container with the given session-scoped id.
func NewContainer(id string) (*Container, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("container id")
	}

	return &Container{
		id:            id,
		status:        Open,
		isConstructed: true,
	}, nil
}

// Validate ensures the container was created via NewContainer.
func (c *Container) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContainerIsNotConstructed
	}
	return nil
}

// ID returns the session-scoped container identifier.
func (c *Container) ID() string {
	return c.id
}

// Status returns the current lifecycle state.
func (c *Container) Status() Status {
	return c.status
}

// Lines returns the container lines in insertion order. The slice is a copy.
func (c *Container) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// AssignedQty returns the quantity of the given item held by this container,
// zero when the item has no line.
func (c *Container) AssignedQty(itemKey string) int {
	for _, l := range c.lines {
		if l.itemKey == itemKey {
			return l.qty
		}
	}
	return 0
}

// Put adds quantity of an item to the container, merging additively into an
// existing line for that item or appending a new one. The per-order portions
// are merged by order id, preserving first-seen order.
//
// Fails with ErrContainerIsNotOpen once the container is completed.
func (c *Container) Put(itemKey string, qty int, sources []SourcePortion) error {
	if c.status != Open {
		return fmt.Errorf("%w: %s is %s", ErrContainerIsNotOpen, c.id, c.status)
	}
	if itemKey == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", qty))
	}

	for i := range c.lines {
		if c.lines[i].itemKey == itemKey {
			c.lines[i].qty += qty
			c.lines[i].sources = mergePortions(c.lines[i].sources, sources)
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		itemKey: itemKey,
		qty:     qty,
		sources: mergePortions(nil, sources),
	})
	return nil
}

// RemoveLine removes the whole line for an item and returns it so the caller
// can credit the quantity back to the pool. There is no partial decrement.
func (c *Container) RemoveLine(itemKey string) (Line, error) {
	if c.status != Open {
		return Line{}, fmt.Errorf("%w: %s is %s", ErrContainerIsNotOpen, c.id, c.status)
	}

	for i, l := range c.lines {
		if l.itemKey == itemKey {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return l, nil
		}
	}

	return Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, itemKey)
}

// Complete freezes the container contents.
// Fails for an empty container or one that is not Open.
func (c *Container) Complete() error {
	if len(c.lines) == 0 {
		return fmt.Errorf("%w: %s", ErrContainerHasNoLines, c.id)
	}

	newStatus, err := c.status.Complete()
	if err != nil {
		return err
	}

	c.status = newStatus
	return nil
}

// MarkLabeled records label acknowledgment. Repeatable without side effects,
// so reprints are safe.
func (c *Container) MarkLabeled() error {
	newStatus, err := c.status.Label()
	if err != nil {
		return err
	}

	c.status = newStatus
	return nil
}

// mergePortions merges src portions into dst by order id, keeping first-seen order.
func mergePortions(dst, src []SourcePortion) []SourcePortion {
	for _, p := range src {
		merged := false
		for i := range dst {
			if dst[i].OrderID == p.OrderID {
				dst[i].Qty += p.Qty
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, p)
		}
	}
	return dst
}
