//go:build cgo

package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// frame carries the scoring context downward through recursion. It is never
// mutated in place: each level derives the frames for its children. The
// preceding context (enclosing binary operator, else-if continuation) travels
// here instead of being read back off parent links.
type frame struct {
	// depth is the current nesting level; nesting-eligible constructs charge
	// this much on top of their inherent cost.
	depth int
	// topLevel is true while traversal has not yet descended below a file's
	// immediate statements. A function declared at top level starts its body
	// at depth 0; the same function nested inside other code starts deeper.
	topLevel bool
	// elseIf is true when the node is the if of an "else if" continuation:
	// the head of the chain already charged it, so it adds nothing itself.
	elseIf bool
	// parentOp is the operator of the enclosing binary expression, "" when
	// the parent is not a binary expression. A run of the same short-circuit
	// operator is charged once.
	parentOp string
	// ancestors is the named-ancestor context: names of all containers and
	// bindings enclosing this point, used solely for recursion detection.
	ancestors []string
}

// scoreAndInner is the engine's return value for one subtree: the summed
// increments attributed to it, and the containers introduced directly within
// it that are not already nested inside another reported container.
type scoreAndInner struct {
	score int
	inner []Container
}

func (s *scoreAndInner) merge(other scoreAndInner) {
	s.score += other.score
	s.inner = append(s.inner, other.inner...)
}

// walker scores one file's tree. It holds the source bytes for identifier
// resolution and nothing else; scoring is a pure function of the tree.
type walker struct {
	src []byte
}

// scoreNode computes the score of the subtree rooted at n under the context
// in f, per the increment rules:
//
//  1. inherent: +1 for catch, ternary, loops, switch, if (unless the if is an
//     else-if continuation), and labeled break/continue;
//  2. nesting: +depth for the same constructs when nested, with the same
//     else-if exemption;
//  3. boolean runs: +1 per run of a distinct short-circuit operator;
//  4. recursion: +1 for a call whose target names any enclosing container.
func (w *walker) scoreNode(n *sitter.Node, f frame) (scoreAndInner, error) {
	kind := n.Type()

	if kind == kindIf {
		return w.scoreIf(n, f)
	}

	var out scoreAndInner
	childOp := ""

	switch {
	case kind == kindBinary:
		op := fieldText(n, w.src, "operator")
		if isBooleanOperator(op) && op != f.parentOp {
			out.score++
		}
		childOp = op

	case callLikeKinds[kind]:
		name, err := calledName(n, w.src)
		if err != nil {
			return out, err
		}
		if name != "" && containsName(f.ancestors, name) {
			out.score++
		}

	case isLabeledJump(n):
		out.score++

	default:
		if t := increments[kind]; t.inherent {
			out.score++
			if t.nesting && f.depth > 0 {
				out.score += f.depth
			}
		}
	}

	ancestors, hint := w.extendAncestors(n, f)
	if err := w.walkChildren(n, f, childOp, ancestors, hint, &out); err != nil {
		return out, err
	}
	return out, nil
}

// walkChildren partitions n's children, scores each in source order at its
// assigned depth, and merges their results. Function bodies entered from the
// top level start at depth 0; every other below-bucket child is one deeper.
func (w *walker) walkChildren(n *sitter.Node, f frame, childOp string, ancestors []string, hint string, out *scoreAndInner) error {
	parts := classifyChildren(n)

	sameFrame := frame{
		depth:     f.depth,
		topLevel:  f.topLevel,
		parentOp:  childOp,
		ancestors: ancestors,
	}

	belowDepth := f.depth + 1
	if isFunctionLikeNode(n) && f.topLevel {
		belowDepth = f.depth
	}
	belowFrame := frame{
		depth:     belowDepth,
		parentOp:  childOp,
		ancestors: ancestors,
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		cf := sameFrame
		if containsNode(parts.below, child) {
			cf = belowFrame
		}
		res, err := w.visitChild(child, cf, hint)
		if err != nil {
			return err
		}
		out.merge(res)
	}
	return nil
}

// scoreIf handles if statements and their else/else-if chains. The head of a
// chain charges 1 plus nesting; each "else if" link is a continuation and
// charges nothing itself; a terminal solo else charges 1 more. Both branch
// bodies are one level deeper than the if, the condition is not.
func (w *walker) scoreIf(n *sitter.Node, f frame) (scoreAndInner, error) {
	var out scoreAndInner

	if !f.elseIf {
		out.score++
		if f.depth > 0 {
			out.score += f.depth
		}
	}

	if cond := n.ChildByFieldName("condition"); cond != nil {
		res, err := w.visitChild(cond, frame{
			depth:     f.depth,
			topLevel:  f.topLevel,
			ancestors: f.ancestors,
		}, "")
		if err != nil {
			return out, err
		}
		out.merge(res)
	}

	if cons := n.ChildByFieldName("consequence"); cons != nil {
		res, err := w.visitChild(cons, frame{
			depth:     f.depth + 1,
			ancestors: f.ancestors,
		}, "")
		if err != nil {
			return out, err
		}
		out.merge(res)
	}

	if alt := n.ChildByFieldName("alternative"); alt != nil {
		res, err := w.scoreElse(alt, f)
		if err != nil {
			return out, err
		}
		out.merge(res)
	}

	return out, nil
}

// scoreElse scores an else clause. An else followed directly by a nested if
// is a single chain link: the nested if continues at the chain's own depth
// and adds no increment of its own. Any other else is terminal and adds 1,
// its body one level deeper.
func (w *walker) scoreElse(clause *sitter.Node, f frame) (scoreAndInner, error) {
	var out scoreAndInner

	continues := false
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		if clause.NamedChild(i).Type() == kindIf {
			continues = true
			break
		}
	}
	if !continues {
		// terminal solo else
		out.score++
	}

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)

		if child.Type() == kindIf {
			res, err := w.scoreNode(child, frame{
				depth:     f.depth,
				topLevel:  f.topLevel,
				elseIf:    true,
				ancestors: f.ancestors,
			})
			if err != nil {
				return out, err
			}
			out.merge(res)
			continue
		}

		res, err := w.visitChild(child, frame{
			depth:     f.depth + 1,
			ancestors: f.ancestors,
		}, "")
		if err != nil {
			return out, err
		}
		out.merge(res)
	}

	return out, nil
}

// visitChild scores one child subtree. When the child introduces a container,
// the subtree's result is wrapped into a Container entry instead of being
// merged transparently, so a function nested in a function appears only under
// its immediate parent's inner list.
func (w *walker) visitChild(child *sitter.Node, f frame, hint string) (scoreAndInner, error) {
	res, err := w.scoreNode(child, f)
	if err != nil {
		return res, err
	}

	if !isContainerIntroducingNode(child) {
		return res, nil
	}

	name, err := containerName(child, w.src, hint)
	if err != nil {
		return res, err
	}

	pt := child.StartPoint()
	return scoreAndInner{
		score: res.score,
		inner: []Container{{
			Name:   name,
			Score:  res.score,
			Line:   int(pt.Row) + 1,
			Column: int(pt.Column) + 1,
			Inner:  containers(res.inner),
		}},
	}, nil
}

// extendAncestors returns the named-ancestor context for n's descendants and
// the naming hint for immediate container children. A name-bearing construct
// appends its own name; a declarator appends the identifier being defined and
// offers it as the hint for an anonymous function assigned to it. The
// parent's slice is never mutated.
func (w *walker) extendAncestors(n *sitter.Node, f frame) ([]string, string) {
	if bindingKinds[n.Type()] {
		if name := bindingName(n, w.src); name != "" {
			return appendName(f.ancestors, name), name
		}
		return f.ancestors, ""
	}

	if isNameBearingNode(n) {
		// a missing identifier surfaces as an error when the container is
		// reported; here it simply contributes nothing
		if name, err := containerName(n, w.src, ""); err == nil && name != "" {
			return appendName(f.ancestors, name), ""
		}
	}

	return f.ancestors, ""
}

// appendName copies the context before extending it so sibling subtrees are
// never affected.
func appendName(ancestors []string, name string) []string {
	extended := make([]string, 0, len(ancestors)+1)
	extended = append(extended, ancestors...)
	return append(extended, name)
}

// containsName scans until the first match.
func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// containers normalizes a nil inner list to an empty one so the serialized
// report always carries an array.
func containers(inner []Container) []Container {
	if inner == nil {
		return []Container{}
	}
	return inner
}
