package domain

import (
	"fmt"
	"reflect"
)

// NodeMap pairs every inspected View with the id it was given for one run.
type NodeMap struct {
	byID   map[int]View
	byView map[View]int
}

// NewNodeMap returns an empty map.
func NewNodeMap() *NodeMap {
	return &NodeMap{
		byID:   make(map[int]View),
		byView: make(map[View]int),
	}
}

// Put records id for v. It fails if either side is already bound.
func (m *NodeMap) Put(id int, v View) error {
	if _, ok := m.byID[id]; ok {
		return fmt.Errorf("node id %d already assigned", id)
	}
	if _, ok := m.byView[v]; ok {
		return fmt.Errorf("view already has id %d", m.byView[v])
	}
	m.byID[id] = v
	m.byView[v] = id
	return nil
}

// View returns the view bound to id.
func (m *NodeMap) View(id int) (View, bool) {
	v, ok := m.byID[id]
	return v, ok
}

// ID returns the id bound to v.
func (m *NodeMap) ID(v View) (int, bool) {
	id, ok := m.byView[v]
	return id, ok
}

func (m *NodeMap) Len() int { return len(m.byID) }

func (m *NodeMap) clone() *NodeMap {
	out := &NodeMap{
		byID:   make(map[int]View, len(m.byID)),
		byView: make(map[View]int, len(m.byView)),
	}
	for id, v := range m.byID {
		out.byID[id] = v
		out.byView[v] = id
	}
	return out
}

// Element is the framework-independent snapshot of one View.
type Element struct {
	ID       int
	ParentID int // -1 for the root
	ChildIDs []int
	Depth    int
	ViewAttributes
}

// Hierarchy is a snapshot of a View tree suitable for check inspection.
// Elements are stored in pre-order; an element's index equals its id.
type Hierarchy struct {
	Elements []*Element
}

// Root returns the root element, or nil for an empty hierarchy.
func (h *Hierarchy) Root() *Element {
	if len(h.Elements) == 0 {
		return nil
	}
	return h.Elements[0]
}

// Element returns the element with the given id.
func (h *Hierarchy) Element(id int) (*Element, error) {
	if id < 0 || id >= len(h.Elements) {
		return nil, fmt.Errorf("id %d: %w", id, ErrElementNotFound)
	}
	return h.Elements[id], nil
}

// Parent returns e's parent, or nil for the root.
func (h *Hierarchy) Parent(e *Element) *Element {
	if e.ParentID < 0 {
		return nil
	}
	return h.Elements[e.ParentID]
}

// Children returns e's direct children in layout order.
func (h *Hierarchy) Children(e *Element) []*Element {
	out := make([]*Element, 0, len(e.ChildIDs))
	for _, id := range e.ChildIDs {
		out = append(out, h.Elements[id])
	}
	return out
}

// BuildHierarchy snapshots the tree under root, assigning ids in pre-order
// starting at 0 and recording each binding in nodes.
func BuildHierarchy(root View, nodes *NodeMap) (*Hierarchy, error) {
	h := &Hierarchy{}
	if _, err := h.add(root, -1, 0, nodes); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hierarchy) add(v View, parentID, depth int, nodes *NodeMap) (int, error) {
	if isNilView(v) {
		return 0, ErrNilView
	}
	if !reflect.TypeOf(v).Comparable() {
		return 0, fmt.Errorf("view type %T is not comparable", v)
	}

	id := len(h.Elements)
	e := &Element{
		ID:             id,
		ParentID:       parentID,
		Depth:          depth,
		ViewAttributes: v.Attributes(),
	}
	h.Elements = append(h.Elements, e)
	if err := nodes.Put(id, v); err != nil {
		return 0, err
	}

	for _, c := range v.Children() {
		childID, err := h.add(c, id, depth+1, nodes)
		if err != nil {
			return 0, err
		}
		e.ChildIDs = append(e.ChildIDs, childID)
	}
	return id, nil
}

func isNilView(v View) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
