// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import "github.com/relfind/relfind/ast"

// AnnotatedNode pairs a root node with the set of its shared descendants:
// non-leaf nodes reachable from root through more than one parent edge.
// Later passes (the translator's environment cache, the skolemizer's
// rewrite log) consult Shared to decide whether a node's translation is
// worth memoizing.
//
// Grounded on kodkod.engine.fol2sat.AnnotatedNode.
type AnnotatedNode struct {
	Root   ast.Node
	Shared map[ast.Node]bool
}

// Annotate walks root once and records its sharing structure.
//
// Grounded on AnnotatedNode.java's SharingDetector: every node is visited
// once per incoming edge (not deduplicated on the first pass), and a node
// is shared if it is reached more than once and has at least one child.
// Leaves are cheap to retranslate and are never recorded, matching the
// javadoc's "non-leaf descendants" specification.
func Annotate(root ast.Node) *AnnotatedNode {
	status := make(map[ast.Node]bool) // false: seen once, true: shared
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		children := n.Children()
		if len(children) == 0 {
			return
		}
		if seenTwice, ok := status[n]; ok {
			if !seenTwice {
				status[n] = true
			}
			return
		}
		status[n] = false
		for _, c := range children {
			visit(c)
		}
	}
	visit(root)
	shared := make(map[ast.Node]bool)
	for n, isShared := range status {
		if isShared {
			shared[n] = true
		}
	}
	return &AnnotatedNode{Root: root, Shared: shared}
}

// Relations returns the set of relation leaves reachable from
// annotated.Root, visiting each shared node only once.
func Relations(annotated *AnnotatedNode) map[*ast.Relation]bool {
	relations := make(map[*ast.Relation]bool)
	visited := make(map[ast.Node]bool)
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if annotated.Shared[n] {
			if visited[n] {
				return
			}
			visited[n] = true
		}
		if r, ok := n.(*ast.Relation); ok {
			relations[r] = true
			return
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(annotated.Root)
	return relations
}

// UsesIntBounds reports whether annotated.Root contains a subterm whose
// meaning depends on the integer bound relation: an IntToExprCast, an
// ExprToIntCast of either kind, or a direct reference to ast.Ints. Any
// ExprToIntCast counts, cardinality included, because the cardinality
// encoding shares the same bit-width bookkeeping as a bit-set sum.
//
// Grounded on AnnotatedNode.usesIntBounds.
func UsesIntBounds(annotated *AnnotatedNode) bool {
	cache := make(map[ast.Node]bool)
	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		if annotated.Shared[n] {
			if v, ok := cache[n]; ok {
				return v
			}
		}
		var result bool
		switch t := n.(type) {
		case *ast.IntToExprCast:
			result = true
		case *ast.ExprToIntCast:
			result = true
		case *ast.Relation:
			result = t == ast.Ints
		default:
			for _, c := range n.Children() {
				if visit(c) {
					result = true
				}
			}
		}
		if annotated.Shared[n] {
			cache[n] = result
		}
		return result
	}
	return visit(annotated.Root)
}
