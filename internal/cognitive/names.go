//go:build cgo

package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"

	cogerr "cogview/internal/errors"
)

// nodeText returns the source text covered by a node.
func nodeText(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

// fieldText returns the text of a node's named field, or "" when absent.
func fieldText(n *sitter.Node, src []byte, field string) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, src)
}

// containerName derives a human-readable name for a container-introducing
// node. hint is the name of the variable the construct is being assigned to,
// used when the construct itself is anonymous. A node the grammar guarantees
// to carry an identifier but does not signals a parser-contract violation.
func containerName(n *sitter.Node, src []byte, hint string) (string, error) {
	switch n.Type() {
	case kindArrow:
		return hint, nil

	case kindFunctionDecl, kindGeneratorDecl:
		if name := fieldText(n, src, "name"); name != "" {
			return name, nil
		}
		// export default function () {} has no identifier
		return hint, nil

	case kindFunctionExpr, kindFunction, kindGeneratorExpr:
		if name := fieldText(n, src, "name"); name != "" {
			return name, nil
		}
		return hint, nil

	case kindMethod:
		name := fieldText(n, src, "name")
		if name == "" {
			return "", cogerr.Newf(cogerr.UnrecoverableState,
				"method definition without a name at %d:%d", n.StartPoint().Row+1, n.StartPoint().Column+1)
		}
		return name, nil

	case kindClassDecl, kindAbstractClassDecl:
		// anonymous class declarations are permitted (export default class {})
		return fieldText(n, src, "name"), nil

	case kindClassExpr:
		if name := fieldText(n, src, "name"); name != "" {
			return name, nil
		}
		return hint, nil

	case kindNamespace, kindModuleDecl:
		name := fieldText(n, src, "name")
		if name == "" {
			return "", cogerr.Newf(cogerr.UnrecoverableState,
				"module declaration without a name at %d:%d", n.StartPoint().Row+1, n.StartPoint().Column+1)
		}
		return name, nil

	case kindInterface, kindTypeAlias:
		return fieldText(n, src, "name"), nil
	}

	return "", nil
}

// bindingName returns the identifier being defined by a declarator-like node
// (variable declarator, class field, object property), or "" when the target
// is not a plain identifier (destructuring patterns, computed keys).
func bindingName(n *sitter.Node, src []byte) string {
	var target *sitter.Node
	switch n.Type() {
	case kindVarDeclarator:
		target = n.ChildByFieldName("name")
	case kindFieldDef:
		target = n.ChildByFieldName("name")
	case kindFieldDefJS:
		target = n.ChildByFieldName("property")
	case kindPair:
		target = n.ChildByFieldName("key")
	default:
		return ""
	}
	if target == nil {
		return ""
	}
	switch target.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier", "string":
		return nodeText(target, src)
	}
	return ""
}

// calledName resolves the identifier text of the entity invoked or referenced
// by a call, new, or JSX element node. Redundant parentheses around the
// target are unwrapped so (f)() still resolves to f. Targets with no literal
// identifier (computed access, immediately-invoked literals) resolve to "".
// A new expression is grammatically guaranteed a constructor; its absence is
// a parser-contract violation.
func calledName(n *sitter.Node, src []byte) (string, error) {
	var target *sitter.Node
	switch n.Type() {
	case kindCall:
		target = n.ChildByFieldName("function")
	case kindNew:
		target = n.ChildByFieldName("constructor")
		if target == nil {
			return "", cogerr.Newf(cogerr.UnrecoverableState,
				"new expression without a constructor at %d:%d", n.StartPoint().Row+1, n.StartPoint().Column+1)
		}
	case kindJSXOpen, kindJSXClosed:
		target = n.ChildByFieldName("name")
	}
	if target == nil {
		return "", nil
	}

	for target.Type() == kindParen {
		inner := target.NamedChild(0)
		if inner == nil {
			return "", nil
		}
		target = inner
	}

	switch target.Type() {
	case "identifier", "type_identifier", "jsx_identifier", "property_identifier":
		return nodeText(target, src), nil
	case kindMember:
		// a.b() resolves to b
		return fieldText(target, src, "property"), nil
	}
	return "", nil
}
