//go:build cgo

package cognitive

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"cogview/internal/syntax"
)

// analyze scores TypeScript source through the full parse-and-score path.
func analyze(t *testing.T, source string) *FileOutput {
	t.Helper()
	return analyzeLang(t, source, syntax.LangTypeScript)
}

func analyzeLang(t *testing.T, source string, lang syntax.Language) *FileOutput {
	t.Helper()

	analyzer := NewAnalyzer()
	fs, err := analyzer.AnalyzeSource(context.Background(), "test.ts", []byte(source), lang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs.Error != "" {
		t.Fatalf("unexpected analysis error: %s", fs.Error)
	}
	return fs.Output
}

func findContainer(inner []Container, name string) *Container {
	for i := range inner {
		if inner[i].Name == name {
			return &inner[i]
		}
	}
	return nil
}

func TestScore_SimpleFunctionIsFree(t *testing.T) {
	out := analyze(t, `
function simple() {
	log("hello");
}
`)

	if out.Score != 0 {
		t.Errorf("expected file score 0, got %d", out.Score)
	}
	simple := findContainer(out.Inner, "simple")
	if simple == nil {
		t.Fatal("container 'simple' not found")
	}
	if simple.Score != 0 {
		t.Errorf("simple: expected score 0, got %d", simple.Score)
	}
}

func TestScore_IfAtDepthZero(t *testing.T) {
	out := analyze(t, `
function withIf(x: number) {
	if (x > 0) {
		log("positive");
	}
}
`)

	fn := findContainer(out.Inner, "withIf")
	if fn == nil {
		t.Fatal("container 'withIf' not found")
	}
	if fn.Score != 1 {
		t.Errorf("withIf: expected score 1, got %d", fn.Score)
	}
}

func TestScore_NestedIfChargesDepth(t *testing.T) {
	out := analyze(t, `
function nested(x: number, y: number) {
	if (x > 0) {
		if (y > 0) {
			log("both");
		}
	}
}
`)

	fn := findContainer(out.Inner, "nested")
	if fn == nil {
		t.Fatal("container 'nested' not found")
	}
	// outer if: 1, inner if: 1 inherent + 1 nesting
	if fn.Score != 3 {
		t.Errorf("nested: expected score 3, got %d", fn.Score)
	}
}

func TestScore_IfElse(t *testing.T) {
	out := analyze(t, `
function branch(x: number) {
	if (x > 0) {
		log("positive");
	} else {
		log("non-positive");
	}
}
`)

	fn := findContainer(out.Inner, "branch")
	if fn.Score != 2 {
		t.Errorf("branch: expected score 2 (if + solo else), got %d", fn.Score)
	}
}

func TestScore_ElseIfChainChargesEnds(t *testing.T) {
	out := analyze(t, `
function chain(x: number) {
	if (x > 0) {
		log("positive");
	} else if (x < 0) {
		log("negative");
	} else {
		log("zero");
	}
}
`)

	fn := findContainer(out.Inner, "chain")
	// leading if: 1, else-if link: 0, terminal solo else: 1
	if fn.Score != 2 {
		t.Errorf("chain: expected score 2, got %d", fn.Score)
	}
}

func TestScore_LongElseIfChain(t *testing.T) {
	out := analyze(t, `
function ladder(x: number) {
	if (x === 1) {
		log("one");
	} else if (x === 2) {
		log("two");
	} else if (x === 3) {
		log("three");
	} else {
		log("many");
	}
}
`)

	fn := findContainer(out.Inner, "ladder")
	if fn.Score != 2 {
		t.Errorf("ladder: expected score 2 regardless of chain length, got %d", fn.Score)
	}
}

func TestScore_BooleanOperatorRuns(t *testing.T) {
	out := analyze(t, `
function sameRun(a: boolean, b: boolean, c: boolean) {
	if (a && b && c) {
		log("all");
	}
}

function mixedRun(a: boolean, b: boolean, c: boolean) {
	if (a && b || c) {
		log("some");
	}
}
`)

	same := findContainer(out.Inner, "sameRun")
	// if: 1, single && run: 1
	if same.Score != 2 {
		t.Errorf("sameRun: expected score 2, got %d", same.Score)
	}

	mixed := findContainer(out.Inner, "mixedRun")
	// if: 1, || run: 1, && run: 1
	if mixed.Score != 3 {
		t.Errorf("mixedRun: expected score 3, got %d", mixed.Score)
	}
}

func TestScore_ComparisonOperatorsAreFree(t *testing.T) {
	out := analyze(t, `
function compare(a: number, b: number) {
	return a + b * 2 <= 100;
}
`)

	fn := findContainer(out.Inner, "compare")
	if fn.Score != 0 {
		t.Errorf("compare: expected score 0 for arithmetic/comparison, got %d", fn.Score)
	}
}

func TestScore_RecursiveCall(t *testing.T) {
	out := analyze(t, `
function fact(n: number): number {
	if (n <= 1) {
		return 1;
	}
	return n * fact(n - 1);
}

function caller(n: number): number {
	if (n <= 1) {
		return 1;
	}
	return n * unrelated(n - 1);
}
`)

	fact := findContainer(out.Inner, "fact")
	// if: 1, recursive call site: 1
	if fact.Score != 2 {
		t.Errorf("fact: expected score 2, got %d", fact.Score)
	}

	caller := findContainer(out.Inner, "caller")
	if caller.Score != 1 {
		t.Errorf("caller: expected score 1 (no recursion increment), got %d", caller.Score)
	}
}

func TestScore_RecursionThroughParentheses(t *testing.T) {
	out := analyze(t, `
function retryish(n: number) {
	if (n > 0) {
		(retryish)(n - 1);
	}
}
`)

	fn := findContainer(out.Inner, "retryish")
	// if: 1, (retryish)(...) still resolves to retryish: 1
	if fn.Score != 2 {
		t.Errorf("retryish: expected score 2, got %d", fn.Score)
	}
}

func TestScore_RecursionThroughBinding(t *testing.T) {
	out := analyze(t, `
const fib = (n: number): number => n < 2 ? n : fib(n - 1) + fib(n - 2);
`)

	fib := findContainer(out.Inner, "fib")
	if fib == nil {
		t.Fatal("container 'fib' not found")
	}
	// ternary: 1, two recursive call sites: 2
	if fib.Score != 3 {
		t.Errorf("fib: expected score 3, got %d", fib.Score)
	}
}

func TestScore_LoopBodyNests(t *testing.T) {
	out := analyze(t, `
function sum(items: number[]) {
	let total = 0;
	for (const item of items) {
		if (item > 0) {
			total += item;
		}
	}
	return total;
}
`)

	fn := findContainer(out.Inner, "sum")
	// for-of: 1, if inside loop body: 1 inherent + 1 nesting
	if fn.Score != 3 {
		t.Errorf("sum: expected score 3, got %d", fn.Score)
	}
}

func TestScore_WhileAndLabeledBreak(t *testing.T) {
	out := analyze(t, `
function search(grid: number[][], target: number): boolean {
	outer: while (hasRows(grid)) {
		while (hasCols(grid)) {
			if (current(grid) === target) {
				break outer;
			}
		}
	}
	return false;
}
`)

	fn := findContainer(out.Inner, "search")
	// outer while: 1, inner while: 1+1, if: 1+2, labeled break: 1
	if fn.Score != 7 {
		t.Errorf("search: expected score 7, got %d", fn.Score)
	}
}

func TestScore_UnlabeledBreakIsFree(t *testing.T) {
	out := analyze(t, `
function firstNegative(items: number[]): number {
	let found = -1;
	for (const item of items) {
		if (item < 0) {
			found = item;
			break;
		}
	}
	return found;
}
`)

	fn := findContainer(out.Inner, "firstNegative")
	// for-of: 1, if: 1+1, unlabeled break: 0
	if fn.Score != 3 {
		t.Errorf("firstNegative: expected score 3, got %d", fn.Score)
	}
}

func TestScore_SwitchChargesOnce(t *testing.T) {
	out := analyze(t, `
function pick(kind: string): number {
	switch (kind) {
	case "a":
		return 1;
	case "b":
		return 2;
	default:
		return 0;
	}
}
`)

	fn := findContainer(out.Inner, "pick")
	if fn.Score != 1 {
		t.Errorf("pick: expected score 1 for the switch, got %d", fn.Score)
	}
}

func TestScore_TernaryAndCatch(t *testing.T) {
	out := analyze(t, `
function sign(x: number): number {
	return x >= 0 ? 1 : -1;
}

function load(path: string) {
	try {
		return read(path);
	} catch (e) {
		return null;
	}
}
`)

	sign := findContainer(out.Inner, "sign")
	if sign.Score != 1 {
		t.Errorf("sign: expected score 1 for the ternary, got %d", sign.Score)
	}

	load := findContainer(out.Inner, "load")
	if load.Score != 1 {
		t.Errorf("load: expected score 1 for the catch clause, got %d", load.Score)
	}
}

func TestScore_DoWhile(t *testing.T) {
	out := analyze(t, `
function drain(queue: number[]) {
	do {
		if (queue.length > 1) {
			queue.pop();
		}
	} while (queue.length > 0);
}
`)

	fn := findContainer(out.Inner, "drain")
	// do: 1, if inside body: 1+1
	if fn.Score != 3 {
		t.Errorf("drain: expected score 3, got %d", fn.Score)
	}
}

func TestScore_FileLevelAggregation(t *testing.T) {
	out := analyze(t, `
function first(x: number) {
	if (x > 0) {
		log("a");
	}
}

function second(x: number) {
	if (x > 0) {
		log("b");
	} else {
		log("c");
	}
}

if (globalFlag) {
	setup();
}
`)

	if len(out.Inner) != 2 {
		t.Fatalf("expected 2 top-level containers, got %d", len(out.Inner))
	}

	first := findContainer(out.Inner, "first")
	second := findContainer(out.Inner, "second")
	if first == nil || second == nil {
		t.Fatal("expected containers 'first' and 'second'")
	}
	if first.Score != 1 || second.Score != 2 {
		t.Errorf("expected scores 1 and 2, got %d and %d", first.Score, second.Score)
	}
	if first.Line == 0 || first.Column == 0 {
		t.Error("container positions should be 1-based and set")
	}

	// file score = both functions + the top-level if
	if out.Score != 4 {
		t.Errorf("expected file score 4, got %d", out.Score)
	}
}

func TestScore_AnonymousArrowNaming(t *testing.T) {
	out := analyze(t, `
const handler = () => {
	if (ready) {
		go();
	}
};

items.forEach(() => {
	if (ready) {
		go();
	}
});
`)

	if len(out.Inner) != 2 {
		t.Fatalf("expected 2 containers, got %d", len(out.Inner))
	}

	handler := findContainer(out.Inner, "handler")
	if handler == nil {
		t.Fatal("arrow assigned to 'handler' should take the binding name")
	}
	if handler.Score != 1 {
		t.Errorf("handler: expected score 1, got %d", handler.Score)
	}

	anon := findContainer(out.Inner, "")
	if anon == nil {
		t.Fatal("bare callback arrow should resolve to an empty name")
	}
	if anon.Score != 1 {
		t.Errorf("anonymous callback: expected score 1, got %d", anon.Score)
	}
}

func TestScore_NestedFunctionContainers(t *testing.T) {
	out := analyze(t, `
function outer() {
	function inner(x: number) {
		if (x > 0) {
			log("deep");
		}
	}
	inner(1);
}
`)

	if len(out.Inner) != 1 {
		t.Fatalf("expected 1 top-level container, got %d", len(out.Inner))
	}

	outer := findContainer(out.Inner, "outer")
	if outer == nil {
		t.Fatal("container 'outer' not found")
	}
	if len(outer.Inner) != 1 || outer.Inner[0].Name != "inner" {
		t.Fatalf("inner function should be nested under outer, got %+v", outer.Inner)
	}

	// inner's if is one level below the nested function's own body
	inner := outer.Inner[0]
	if inner.Score != 2 {
		t.Errorf("inner: expected score 2, got %d", inner.Score)
	}
	if outer.Score != 2 {
		t.Errorf("outer: expected score 2 (rolled up from inner), got %d", outer.Score)
	}
}

func TestScore_ClassMethods(t *testing.T) {
	out := analyze(t, `
class Calculator {
	add(a: number, b: number): number {
		return a + b;
	}

	normalize(x: number): number {
		if (x < 0) {
			return -x;
		}
		return x;
	}

	get value(): number {
		return this.total;
	}
}
`)

	calc := findContainer(out.Inner, "Calculator")
	if calc == nil {
		t.Fatal("container 'Calculator' not found")
	}
	if len(calc.Inner) != 3 {
		t.Fatalf("expected 3 method containers, got %d", len(calc.Inner))
	}

	if m := findContainer(calc.Inner, "normalize"); m == nil || m.Score != 1 {
		t.Errorf("normalize: expected score 1, got %+v", m)
	}
	if m := findContainer(calc.Inner, "value"); m == nil || m.Score != 0 {
		t.Errorf("value accessor: expected score 0, got %+v", m)
	}
	if calc.Score != 1 {
		t.Errorf("Calculator: expected score 1, got %d", calc.Score)
	}
}

func TestScore_Namespace(t *testing.T) {
	out := analyze(t, `
namespace Geometry {
	export function area(r: number): number {
		if (r < 0) {
			throw new RangeError("negative radius");
		}
		return Math.PI * r * r;
	}
}
`)

	ns := findContainer(out.Inner, "Geometry")
	if ns == nil {
		t.Fatal("container 'Geometry' not found")
	}
	area := findContainer(ns.Inner, "area")
	if area == nil {
		t.Fatal("'area' should be reported inside the namespace")
	}
	if area.Score != 1 {
		t.Errorf("area: expected score 1, got %d", area.Score)
	}
}

func TestScore_JSXSelfReference(t *testing.T) {
	out := analyzeLang(t, `
const Tree = ({node}) => {
	return <div>{node.children.map((c) => <Tree node={c} />)}</div>;
};
`, syntax.LangTSX)

	tree := findContainer(out.Inner, "Tree")
	if tree == nil {
		t.Fatal("container 'Tree' not found")
	}
	// the <Tree /> reference inside the component counts as recursion
	if tree.Score != 1 {
		t.Errorf("Tree: expected score 1, got %d", tree.Score)
	}
	if anon := findContainer(tree.Inner, ""); anon == nil {
		t.Error("map callback should appear as an anonymous inner container")
	}
}

func TestScore_Deterministic(t *testing.T) {
	source := `
function churn(xs: number[]) {
	for (const x of xs) {
		if (x % 2 === 0 && x > 10) {
			log(x);
		} else {
			skip(x);
		}
	}
}
`
	first := analyze(t, source)
	for i := 0; i < 5; i++ {
		again := analyze(t, source)
		if again.Score != first.Score {
			t.Fatalf("score changed between runs: %d vs %d", again.Score, first.Score)
		}
	}
	if first.Score < 0 {
		t.Error("score must be non-negative")
	}
}

func TestScore_WireShape(t *testing.T) {
	out := analyze(t, `
function flat() {
	return 1;
}
`)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// inner lists are always arrays, never null
	if strings.Contains(string(data), `"inner":null`) {
		t.Errorf("inner must serialize as an array, got: %s", data)
	}
	for _, field := range []string{`"score"`, `"inner"`, `"name"`, `"line"`, `"column"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected field %s in wire shape, got: %s", field, data)
		}
	}
}
