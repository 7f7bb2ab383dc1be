package diagram

import "strings"

// NodeType is the role of a topology element.
type NodeType string

// Node types recognized in diagram boxes.
const (
	Ingress  NodeType = "ingress"  // portable client device
	Base     NodeType = "base"     // rooftop relay
	Backbone NodeType = "backbone" // tower relay
)

// Types lists every node type in classification precedence order.
var Types = []NodeType{Ingress, Backbone, Base}

// Valid reports whether t is one of the enumerated node types.
func (t NodeType) Valid() bool {
	switch t {
	case Ingress, Base, Backbone:
		return true
	}
	return false
}

// ParseNodeType converts a case-insensitive keyword into a NodeType.
func ParseNodeType(s string) (NodeType, bool) {
	t := NodeType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Default labels applied when no parenthesized label is recoverable.
const (
	DefaultIngressLabel  = "Your device"
	DefaultBaseLabel     = "Rooftop node"
	DefaultBackboneLabel = "Tower node"
)

// DefaultLabel returns the built-in display label for t.
func DefaultLabel(t NodeType) string {
	switch t {
	case Ingress:
		return DefaultIngressLabel
	case Backbone:
		return DefaultBackboneLabel
	default:
		return DefaultBaseLabel
	}
}

// Node is a classified topology element.
type Node struct {
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
}

// PositionedNode is a Node with the provenance of its box in the source text.
// ColumnStart and ColumnEnd are rune offsets on the source line (end exclusive).
type PositionedNode struct {
	Node
	ColumnStart int
	ColumnEnd   int
	Row         int
}

// Center returns the rounded column center of the box. Halves round up.
func (n PositionedNode) Center() int {
	return (n.ColumnStart + n.ColumnEnd + 1) / 2
}

// exactCenter returns the unrounded column center used for bin lookup.
func (n PositionedNode) exactCenter() float64 {
	return float64(n.ColumnStart+n.ColumnEnd) / 2
}

// Level is one output row of the diagram graph.
//
// ColumnPositions is parallel to Nodes and indexes into the diagram-wide
// [Columns], which is what lets nodes on different levels align.
type Level struct {
	Nodes           []Node `json:"nodes"`
	ColumnPositions []int  `json:"columnPositions"`
	HasConnections  bool   `json:"hasConnections"`
}

// HasType reports whether any node on the level has type t.
func (l Level) HasType(t NodeType) bool {
	for _, n := range l.Nodes {
		if n.Type == t {
			return true
		}
	}
	return false
}
