//go:build cgo

package cognitive

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func kinds(nodes []*sitter.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Type())
	}
	return out
}

func hasKind(nodes []*sitter.Node, kind string) bool {
	for _, n := range nodes {
		if n.Type() == kind {
			return true
		}
	}
	return false
}

func TestClassifyChildren_If(t *testing.T) {
	root := parseTS(t, "if (a) { b(); }")
	ifNode := findKind(root, kindIf)

	p := classifyChildren(ifNode)
	if !hasKind(p.same, kindParen) {
		t.Errorf("condition should stay at the same depth, same=%v", kinds(p.same))
	}
	if !hasKind(p.below, "statement_block") {
		t.Errorf("consequence should move below, below=%v", kinds(p.below))
	}
}

func TestClassifyChildren_Loops(t *testing.T) {
	root := parseTS(t, "for (let i = 0; i < n; i++) { work(i); }")
	forNode := findKind(root, kindFor)

	p := classifyChildren(forNode)
	if !hasKind(p.below, "statement_block") {
		t.Errorf("loop body should move below, below=%v", kinds(p.below))
	}
	if hasKind(p.below, "lexical_declaration") {
		t.Error("loop header should stay at the loop's own depth")
	}

	root = parseTS(t, "for (const x of xs) { work(x); }")
	forOf := findKind(root, kindForIn)

	p = classifyChildren(forOf)
	if !hasKind(p.below, "statement_block") {
		t.Errorf("for-of body should move below, below=%v", kinds(p.below))
	}
	if hasKind(p.below, "identifier") {
		t.Error("for-of bindings should stay at the loop's own depth")
	}
}

func TestClassifyChildren_SwitchAndDo(t *testing.T) {
	root := parseTS(t, "switch (k) { case 1: break; }")
	sw := findKind(root, kindSwitch)

	p := classifyChildren(sw)
	if !hasKind(p.same, kindParen) {
		t.Errorf("switch discriminant should stay at the same depth, same=%v", kinds(p.same))
	}
	if !hasKind(p.below, "switch_body") {
		t.Errorf("switch body should move below, below=%v", kinds(p.below))
	}

	root = parseTS(t, "do { step(); } while (more());")
	do := findKind(root, kindDo)

	p = classifyChildren(do)
	if !hasKind(p.below, "statement_block") {
		t.Errorf("do body should move below, below=%v", kinds(p.below))
	}
	if !hasKind(p.same, kindParen) {
		t.Errorf("do condition should stay at the same depth, same=%v", kinds(p.same))
	}
}

func TestClassifyChildren_PlainNodes(t *testing.T) {
	root := parseTS(t, "const total = base + extra;")
	decl := findKind(root, kindVarDeclarator)

	p := classifyChildren(decl)
	if len(p.below) != 0 {
		t.Errorf("plain nodes should keep all children at the same depth, below=%v", kinds(p.below))
	}
	if len(p.same) == 0 {
		t.Error("expected same-depth children for a declarator")
	}
}

func TestClassifyChildren_FunctionBody(t *testing.T) {
	root := parseTS(t, "function f(a, b) { return a + b; }")
	fn := findKind(root, kindFunctionDecl)

	p := classifyChildren(fn)
	if !hasKind(p.below, "statement_block") {
		t.Errorf("function body should move below, below=%v", kinds(p.below))
	}
	if !hasKind(p.same, "formal_parameters") {
		t.Errorf("parameters should stay at the same depth, same=%v", kinds(p.same))
	}
}
