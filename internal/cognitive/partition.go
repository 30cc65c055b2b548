//go:build cgo

package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// belowFields names, per construct kind, the child roles that are scored one
// nesting level deeper. Children in any other role stay at the construct's
// own depth: a loop or branch header is read at the level of the construct,
// only the executed body is deeper. Kinds not listed are plain nodes whose
// children all stay at the same depth.
var belowFields = map[string][]string{
	kindIf:      {"consequence"}, // the else clause is chain-aware, handled by the engine
	kindTernary: {"consequence", "alternative"},
	kindFor:     {"body"},
	kindForIn:   {"body"},
	kindWhile:   {"body"},
	kindDo:      {"body"},
	kindSwitch:  {"body"},
	kindCatch:   {"body"},

	kindFunctionDecl:  {"body"},
	kindFunctionExpr:  {"body"},
	kindFunction:      {"body"},
	kindArrow:         {"body"},
	kindMethod:        {"body"},
	kindGeneratorDecl: {"body"},
	kindGeneratorExpr: {"body"},
}

// partitioned holds a node's children split by scoring depth, each bucket in
// source order.
type partitioned struct {
	same  []*sitter.Node
	below []*sitter.Node
}

// classifyChildren partitions a node's named children into those scored at
// the node's own depth and those scored one level deeper.
func classifyChildren(n *sitter.Node) partitioned {
	fields := belowFields[n.Type()]

	var deeper []*sitter.Node
	for _, f := range fields {
		if child := n.ChildByFieldName(f); child != nil {
			deeper = append(deeper, child)
		}
	}

	var p partitioned
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if containsNode(deeper, child) {
			p.below = append(p.below, child)
		} else {
			p.same = append(p.same, child)
		}
	}
	return p
}

// containsNode reports membership by tree-sitter node identity.
func containsNode(nodes []*sitter.Node, n *sitter.Node) bool {
	for _, candidate := range nodes {
		if candidate.Equal(n) {
			return true
		}
	}
	return false
}
