package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/layoutcheck/internal/domain"
)

func named(class string, children ...*domain.ViewNode) *domain.ViewNode {
	return &domain.ViewNode{
		ViewAttributes: domain.ViewAttributes{ClassName: class},
		Nodes:          children,
	}
}

func sampleTree() *domain.ViewNode {
	return named("Root",
		named("A", named("A1"), named("A2")),
		named("B"),
	)
}

func TestBuildHierarchy_PreOrderIDs(t *testing.T) {
	nodes := domain.NewNodeMap()
	h, err := domain.BuildHierarchy(sampleTree(), nodes)
	require.NoError(t, err)

	var classes []string
	for i, e := range h.Elements {
		assert.Equal(t, i, e.ID)
		classes = append(classes, e.ClassName)
	}
	assert.Equal(t, []string{"Root", "A", "A1", "A2", "B"}, classes)
	assert.Equal(t, 5, nodes.Len())

	root := h.Root()
	assert.Equal(t, -1, root.ParentID)
	assert.Equal(t, []int{1, 4}, root.ChildIDs)

	a2, err := h.Element(3)
	require.NoError(t, err)
	assert.Equal(t, 2, a2.Depth)
	assert.Equal(t, "A", h.Parent(a2).ClassName)
	assert.Nil(t, h.Parent(root))
	assert.Len(t, h.Children(h.Parent(a2)), 2)
}

func TestBuildHierarchy_NodeMapRoundTrip(t *testing.T) {
	tree := sampleTree()
	nodes := domain.NewNodeMap()
	_, err := domain.BuildHierarchy(tree, nodes)
	require.NoError(t, err)

	b := tree.Nodes[1]
	id, ok := nodes.ID(b)
	require.True(t, ok)
	assert.Equal(t, 4, id)

	v, ok := nodes.View(4)
	require.True(t, ok)
	assert.Same(t, b, v)

	_, ok = nodes.View(99)
	assert.False(t, ok)
}

func TestBuildHierarchy_NilChild(t *testing.T) {
	tree := named("Root", nil)
	_, err := domain.BuildHierarchy(tree, domain.NewNodeMap())
	assert.ErrorIs(t, err, domain.ErrNilView)

	_, err = domain.BuildHierarchy(nil, domain.NewNodeMap())
	assert.ErrorIs(t, err, domain.ErrNilView)
}

func TestBuildHierarchy_SharedViewRejected(t *testing.T) {
	shared := named("Shared")
	tree := named("Root", shared, shared)
	_, err := domain.BuildHierarchy(tree, domain.NewNodeMap())
	assert.ErrorContains(t, err, "already has id")
}

func TestHierarchy_ElementNotFound(t *testing.T) {
	h, err := domain.BuildHierarchy(named("Root"), domain.NewNodeMap())
	require.NoError(t, err)

	_, err = h.Element(1)
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
	_, err = h.Element(-1)
	assert.ErrorIs(t, err, domain.ErrElementNotFound)

	assert.Nil(t, (&domain.Hierarchy{}).Root())
}

func TestNodeMap_PutRejectsRebinding(t *testing.T) {
	m := domain.NewNodeMap()
	a, b := named("A"), named("B")
	require.NoError(t, m.Put(0, a))
	assert.Error(t, m.Put(0, b))
	assert.Error(t, m.Put(1, a))
	assert.Equal(t, 1, m.Len())
}

func TestViewAttributes_Defaults(t *testing.T) {
	var a domain.ViewAttributes
	assert.True(t, a.IsVisible())
	assert.True(t, a.IsImportantForAccessibility())

	no := false
	a.ImportantForA11y = &no
	a.Visibility = domain.Invisible
	assert.False(t, a.IsVisible())
	assert.False(t, a.IsImportantForAccessibility())
}

func TestRect(t *testing.T) {
	r := domain.Rect{Left: 10, Top: 20, Right: 40, Bottom: 25}
	assert.Equal(t, 30, r.Width())
	assert.Equal(t, 5, r.Height())
	assert.False(t, r.Empty())
	assert.True(t, domain.Rect{Left: 5, Right: 5, Bottom: 10}.Empty())
}
