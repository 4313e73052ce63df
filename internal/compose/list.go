// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"fmt"

	"pagecomposer/internal/models"
)

// List is the ordered component sequence of the page being edited. It is
// the only writer of that sequence. A List is not safe for concurrent use;
// callers serialise access per editor.
type List struct {
	components []models.Component
}

// NewList returns a list holding copies of the given components.
func NewList(components ...models.Component) *List {
	l := &List{}
	l.ReplaceAll(components)
	return l
}

// Len returns the number of components.
func (l *List) Len() int { return len(l.components) }

// At returns a copy of the component at index.
func (l *List) At(index int) (models.Component, bool) {
	if index < 0 || index >= len(l.components) {
		return models.Component{}, false
	}
	return l.components[index].Clone(), true
}

// Components returns a deep copy of the sequence.
func (l *List) Components() []models.Component {
	out := models.CloneComponents(l.components)
	if out == nil {
		out = []models.Component{}
	}
	return out
}

// Append creates a component of the given variant at the end of the list.
func (l *List) Append(v models.Variant) (models.Component, error) {
	return l.Insert(len(l.components), v)
}

// Insert creates a component of the given variant at index. The index is
// clamped to [0, Len()].
func (l *List) Insert(index int, v models.Variant) (models.Component, error) {
	c, err := NewComponent(v)
	if err != nil {
		return models.Component{}, err
	}
	index = max(0, min(index, len(l.components)))
	l.components = append(l.components, models.Component{})
	copy(l.components[index+1:], l.components[index:])
	l.components[index] = c
	return c.Clone(), nil
}

// Remove deletes the component at index and returns it.
func (l *List) Remove(index int) (models.Component, error) {
	if index < 0 || index >= len(l.components) {
		return models.Component{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	removed := l.components[index]
	l.components = append(l.components[:index], l.components[index+1:]...)
	return removed, nil
}

// MoveTo relocates the component at from so that it ends up at to. Every
// component outside the [from, to] range keeps its position, and the ones
// inside shift by one in a single pass. Out-of-range indices leave the
// list untouched. Reports whether the order changed.
func (l *List) MoveTo(from, to int) bool {
	n := len(l.components)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}

	moving := l.components[from]
	if from < to {
		copy(l.components[from:to], l.components[from+1:to+1])
	} else {
		copy(l.components[to+1:from+1], l.components[to:from])
	}
	l.components[to] = moving
	return true
}

// Update replaces the component at index with UpdateComponent's result.
func (l *List) Update(index int, field, value string) (models.Component, error) {
	if index < 0 || index >= len(l.components) {
		return models.Component{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	updated, err := UpdateComponent(l.components[index], field, value)
	if err != nil {
		return models.Component{}, err
	}
	l.components[index] = updated
	return updated.Clone(), nil
}

// Set replaces the component at index. The replacement may keep the slot's
// identifier but must not reuse one held elsewhere in the list.
func (l *List) Set(index int, c models.Component) error {
	if index < 0 || index >= len(l.components) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	for i, existing := range l.components {
		if i != index && existing.ID == c.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
	}
	l.components[index] = c.Clone()
	return nil
}

// ReplaceAll discards the current sequence and installs copies of the
// given components. There is no undo.
func (l *List) ReplaceAll(components []models.Component) {
	l.components = make([]models.Component, 0, len(components))
	l.AppendAll(components)
}

// AppendAll adds copies of the given components after the current ones.
// Components whose identifier is empty or already present get a new one.
func (l *List) AppendAll(components []models.Component) {
	seen := make(map[string]bool, len(l.components)+len(components))
	for _, c := range l.components {
		seen[c.ID] = true
	}
	for _, c := range components {
		c = c.Clone()
		if c.ID == "" || seen[c.ID] {
			c.ID = newComponentID()
		}
		seen[c.ID] = true
		l.components = append(l.components, c)
	}
}
