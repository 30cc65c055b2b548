//go:build cgo

package cognitive

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node kinds of the JavaScript/TypeScript grammar family the engine
// special-cases. The set is closed: kinds not listed here are plain nodes
// whose children are scored at the current depth.
const (
	kindIf      = "if_statement"
	kindElse    = "else_clause"
	kindTernary = "ternary_expression"
	kindFor     = "for_statement"
	kindForIn   = "for_in_statement" // covers both for-in and for-of
	kindWhile   = "while_statement"
	kindDo      = "do_statement"
	kindSwitch  = "switch_statement"
	kindCatch   = "catch_clause"

	kindBreak    = "break_statement"
	kindContinue = "continue_statement"

	kindBinary = "binary_expression"
	kindParen  = "parenthesized_expression"

	kindCall       = "call_expression"
	kindNew        = "new_expression"
	kindMember     = "member_expression"
	kindJSXOpen    = "jsx_opening_element"
	kindJSXClosed  = "jsx_self_closing_element"
	kindIdentifier = "identifier"

	kindFunctionDecl  = "function_declaration"
	kindFunctionExpr  = "function_expression"
	kindFunction      = "function" // pre-rename spelling of function_expression
	kindArrow         = "arrow_function"
	kindMethod        = "method_definition"
	kindGeneratorDecl = "generator_function_declaration"
	kindGeneratorExpr = "generator_function"

	kindClassDecl         = "class_declaration"
	kindClassExpr         = "class"
	kindAbstractClassDecl = "abstract_class_declaration"

	kindNamespace  = "internal_module" // namespace X {}
	kindModuleDecl = "module"          // module "x" {}
	kindInterface  = "interface_declaration"
	kindTypeAlias  = "type_alias_declaration"

	kindVarDeclarator = "variable_declarator"
	kindFieldDef      = "public_field_definition"
	kindFieldDefJS    = "field_definition"
	kindPair          = "pair"
)

// traits records the cost behavior of a node kind: whether its mere presence
// charges one point, and whether it additionally charges the current nesting
// depth when it occurs nested.
type traits struct {
	inherent bool
	nesting  bool
}

// increments maps node kind to its cost traits. if_statement is absent: its
// increments depend on whether it continues an else-if chain, so the engine
// handles it directly. Labeled jumps are likewise resolved per node, since
// only a break/continue naming a target label carries cost.
var increments = map[string]traits{
	kindTernary: {inherent: true, nesting: true},
	kindFor:     {inherent: true, nesting: true},
	kindForIn:   {inherent: true, nesting: true},
	kindWhile:   {inherent: true, nesting: true},
	kindDo:      {inherent: true, nesting: true},
	kindSwitch:  {inherent: true, nesting: true},
	kindCatch:   {inherent: true, nesting: true},
}

var functionLikeKinds = map[string]bool{
	kindFunctionDecl:  true,
	kindFunctionExpr:  true,
	kindFunction:      true,
	kindArrow:         true,
	kindMethod:        true,
	kindGeneratorDecl: true,
	kindGeneratorExpr: true,
}

var classKinds = map[string]bool{
	kindClassDecl:         true,
	kindClassExpr:         true,
	kindAbstractClassDecl: true,
}

var namespaceKinds = map[string]bool{
	kindNamespace:  true,
	kindModuleDecl: true,
}

// bindingKinds introduce a "variable being defined" name: the declarator's
// identifier both names an anonymous function assigned to it and joins the
// named-ancestor context so self-calls through the binding count as
// recursion.
var bindingKinds = map[string]bool{
	kindVarDeclarator: true,
	kindFieldDef:      true,
	kindFieldDefJS:    true,
	kindPair:          true,
}

var callLikeKinds = map[string]bool{
	kindCall:      true,
	kindNew:       true,
	kindJSXOpen:   true,
	kindJSXClosed: true,
}

// isFunctionLikeNode reports whether the node is a function declaration,
// function expression, arrow function, method, or accessor.
func isFunctionLikeNode(n *sitter.Node) bool {
	return functionLikeKinds[n.Type()]
}

// isContainerIntroducingNode reports whether the node introduces a reported
// container: a function-like construct, a class, or a namespace/module.
func isContainerIntroducingNode(n *sitter.Node) bool {
	kind := n.Type()
	return functionLikeKinds[kind] || classKinds[kind] || namespaceKinds[kind]
}

// isNameBearingNode reports whether the node extends the named-ancestor
// context. Interfaces and type aliases carry names for recursion detection
// even though they are not reported containers.
func isNameBearingNode(n *sitter.Node) bool {
	kind := n.Type()
	return isContainerIntroducingNode(n) || kind == kindInterface || kind == kindTypeAlias
}

// isLabeledJump reports whether the node is a break or continue that names a
// target label. Unlabeled jumps carry no cost.
func isLabeledJump(n *sitter.Node) bool {
	kind := n.Type()
	if kind != kindBreak && kind != kindContinue {
		return false
	}
	return n.ChildByFieldName("label") != nil
}

// isInherentCostNode reports whether the node's mere presence charges one
// point: catch clauses, conditionals, loops, switch, if, and labeled jumps.
func isInherentCostNode(n *sitter.Node) bool {
	kind := n.Type()
	if kind == kindIf {
		return true
	}
	if t, ok := increments[kind]; ok {
		return t.inherent
	}
	return isLabeledJump(n)
}

// isBooleanOperator reports whether op is one of the short-circuit operators
// charged per distinct run.
func isBooleanOperator(op string) bool {
	switch op {
	case "&&", "||", "??":
		return true
	}
	return false
}
