/*
File    : epilang/eval/eval.go
*/

// Package eval walks an ast.Expression tree against a reusable value stack,
// producing a value.Value or a runtime *Error (spec.md §4.2). The stack is
// a plain Go slice of *value.Slot; a "frame" is just an index into it, so
// recursive calls and nested declarations push and pop slots the same way
// the source's explicit StackSlot vector does.
package eval

import (
	"fmt"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/function"
	"github.com/epilang-lang/epilang/token"
	"github.com/epilang-lang/epilang/value"
)

// State holds the value stack for one evaluator invocation. Exported so the
// REPL can keep one alive across lines (each top-level `let`/`fn` leaves a
// permanent slot on it, spec.md §9 "interactive driver").
type State struct {
	Stack []*value.Slot
}

// New creates an empty evaluator state.
func New() *State {
	return &State{}
}

// Eval evaluates expr from a fresh, empty stack. Used for one-shot file
// execution; the REPL instead calls (*State).Eval directly on a persistent
// State so earlier bindings stay visible.
func Eval(expr ast.Expression) (value.Value, error) {
	return New().Eval(expr)
}

// Eval runs expr with stackStart 0 — the bottom of s.Stack — so bindings
// already on the stack are addressed by their root-scope depths.
func (s *State) Eval(expr ast.Expression) (value.Value, error) {
	return s.eval(expr, 0, false, "")
}

// eval is the recursive evaluator. stackStart is the active frame's base
// index (spec.md §3 "Evaluator value stack"); inCall and paramName carry the
// innermost enclosing function call's "first argument's source name", used
// only to resolve a `Throwcc` label (see evalThrowcc). Per the source's
// eval_expression, every recursive call below passes false/"" — inCall and
// paramName are live only for the single node evalCall hands them to
// (the function body's own root), never threaded into that node's children.
func (s *State) eval(e ast.Expression, stackStart int, inCall bool, paramName string) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Const:
		return n.Value, nil

	case *ast.Var:
		return s.Stack[stackStart+n.Scope].Get(), nil

	case *ast.Decl:
		return s.evalDecl(n, stackStart)

	case *ast.Assign:
		return s.evalAssign(n, stackStart)

	case *ast.Seq:
		if _, err := s.eval(n.First, stackStart, false, ""); err != nil {
			return nil, err
		}
		return s.eval(n.Second, stackStart, false, "")

	case *ast.List:
		elems := make([]*value.Slot, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := s.eval(el, stackStart, false, "")
			if err != nil {
				return nil, err
			}
			elems = append(elems, value.NewSlot(v))
		}
		return value.List{Elements: elems}, nil

	case *ast.ListSelection:
		slot, err := s.lvalue(n, stackStart)
		if err != nil {
			return nil, err
		}
		return slot.Get(), nil

	case *ast.BinaryOp:
		return s.evalBinaryOp(n, stackStart)

	case *ast.UnaryOp:
		v, err := s.eval(n.Operand, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Bool)
		if !ok {
			return nil, exception("'!' requires a boolean operand")
		}
		return value.Bool{Value: !b.Value}, nil

	case *ast.IfThenElse:
		cv, err := s.eval(n.Cond, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		cb, ok := cv.(value.Bool)
		if !ok {
			return nil, exception("if condition must be a boolean")
		}
		if cb.Value {
			return s.eval(n.Then, stackStart, false, "")
		}
		return s.eval(n.Else, stackStart, false, "")

	case *ast.While:
		var result value.Value = value.Unit{}
		for {
			gv, err := s.eval(n.Guard, stackStart, false, "")
			if err != nil {
				return nil, err
			}
			gb, ok := gv.(value.Bool)
			if !ok {
				return nil, exception("while guard must be a boolean")
			}
			if !gb.Value {
				return result, nil
			}
			result, err = s.eval(n.Body, stackStart, false, "")
			if err != nil {
				return nil, err
			}
		}

	case *ast.Function:
		fn := &function.Function{NumArgs: len(n.ParamNames), Body: n.Body}
		return fn.ToValue(), nil

	case *ast.FunctionCall:
		return s.evalCall(n, stackStart)

	case *ast.Try:
		return s.eval(n.Body, stackStart, false, "")

	case *ast.TryCatch:
		return s.evalTryCatch(n, stackStart)

	case *ast.Callcc:
		return s.evalCallcc(n, stackStart)

	case *ast.Throw:
		v, err := s.eval(n.Value, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		return nil, thrown(v)

	case *ast.Throwcc:
		return s.evalThrowcc(n, stackStart, inCall, paramName)

	default:
		return nil, exception(fmt.Sprintf("eval: unhandled node %T", e))
	}
}

func (s *State) evalDecl(n *ast.Decl, stackStart int) (value.Value, error) {
	initV, err := s.eval(n.Init, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	s.Stack = append(s.Stack, value.NewSlot(initV))
	bodyV, err := s.eval(n.Body, stackStart, false, "")
	s.Stack = s.Stack[:len(s.Stack)-1]
	return bodyV, err
}

func (s *State) evalAssign(n *ast.Assign, stackStart int) (value.Value, error) {
	slot, err := s.lvalue(n.Target, stackStart)
	if err != nil {
		return nil, err
	}
	v, err := s.eval(n.Value, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	slot.Set(v)
	return value.Unit{}, nil
}

// lvalue resolves an assignable expression (a Var or a ListSelection) to
// the stack slot it names, without reading the slot's value. This realizes
// the "by-reference" half of spec.md §4.3's by-value/by-reference split: an
// ordinary eval() of a Var or ListSelection reads through the slot, but
// Assign's target must reach the slot itself.
func (s *State) lvalue(e ast.Expression, stackStart int) (*value.Slot, error) {
	switch n := e.(type) {
	case *ast.Var:
		return s.Stack[stackStart+n.Scope], nil
	case *ast.ListSelection:
		lv, err := s.eval(n.List, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		list, ok := lv.(value.List)
		if !ok {
			return nil, exception("index target is not a list")
		}
		iv, err := s.eval(n.Index, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		idx, ok := iv.(value.Int)
		if !ok {
			return nil, exception("list index is not an integer")
		}
		if idx.Value < 0 || idx.Value >= int64(len(list.Elements)) {
			return nil, exception("list index out of range")
		}
		return list.Elements[idx.Value], nil
	default:
		return nil, exception("invalid assignment target")
	}
}

func (s *State) evalCall(n *ast.FunctionCall, stackStart int) (value.Value, error) {
	calleeV, err := s.eval(n.Callable, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	fn, ok := calleeV.(value.Fn)
	if !ok {
		return nil, exception("call target is not a function")
	}
	if len(n.Args) != fn.NumArgs {
		return nil, exception(fmt.Sprintf("function expects %d argument(s), got %d", fn.NumArgs, len(n.Args)))
	}

	newStart := len(s.Stack)
	firstArgName := ""
	for i, argExpr := range n.Args {
		av, err := s.eval(argExpr, stackStart, false, "")
		if err != nil {
			s.Stack = s.Stack[:newStart]
			return nil, err
		}
		if i == 0 {
			firstArgName = argSourceName(argExpr)
		}
		s.Stack = append(s.Stack, value.NewSlot(av))
	}
	// Externally-captured slots (the REPL's self-recursion binding, spec.md
	// §9) sit immediately after the parameters, matching where the parser's
	// FunctionScope.BindExternal allocated them.
	s.Stack = append(s.Stack, fn.ExternalValues...)

	body := function.FromValue(fn)
	resV, err := s.eval(body, newStart, true, firstArgName)
	s.Stack = s.Stack[:newStart]
	return resV, err
}

// argSourceName returns the textual name of a call argument expression when
// it is exactly a variable reference, mirroring the source's
// `exp_to_string(&args[0])` used to thread a continuation's label through a
// function call (spec.md §8's `f(k)` scenario). Any other argument shape has
// no meaningful "name" for this purpose and yields "".
func argSourceName(e ast.Expression) string {
	if v, ok := e.(*ast.Var); ok {
		return v.Name
	}
	return ""
}

func (s *State) evalTryCatch(n *ast.TryCatch, stackStart int) (value.Value, error) {
	bodyV, err := s.eval(n.Body, stackStart, false, "")
	if err == nil {
		return bodyV, nil
	}
	ee, ok := err.(*Error)
	if !ok {
		return nil, err
	}
	s.Stack = append(s.Stack, value.NewSlot(ee.Payload))
	handlerV, herr := s.eval(n.Handler, stackStart, false, "")
	s.Stack = s.Stack[:len(s.Stack)-1]
	return handlerV, herr
}

func (s *State) evalCallcc(n *ast.Callcc, stackStart int) (value.Value, error) {
	s.Stack = append(s.Stack, value.NewSlot(value.Str{Value: n.Label}))
	bodyV, err := s.eval(n.Body, stackStart, false, "")
	s.Stack = s.Stack[:len(s.Stack)-1]
	if err == nil {
		return bodyV, nil
	}
	ee, ok := err.(*Error)
	if !ok {
		return nil, err
	}
	if ee.Kind == Escape && ee.Label == n.Label {
		return ee.Payload, nil
	}
	return nil, err
}

func (s *State) evalThrowcc(n *ast.Throwcc, stackStart int, inCall bool, paramName string) (value.Value, error) {
	v, err := s.eval(n.Value, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	label := n.Label
	if inCall {
		label = paramName
	}
	return nil, escape(label, v)
}

func (s *State) evalBinaryOp(n *ast.BinaryOp, stackStart int) (value.Value, error) {
	if n.Op == token.OpAnd || n.Op == token.OpOr {
		lv, err := s.eval(n.Left, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		lb, ok := lv.(value.Bool)
		if !ok {
			return nil, exception(fmt.Sprintf("%s requires a boolean left operand", n.Op))
		}
		if n.Op == token.OpAnd && !lb.Value {
			return value.Bool{Value: false}, nil
		}
		if n.Op == token.OpOr && lb.Value {
			return value.Bool{Value: true}, nil
		}
		rv, err := s.eval(n.Right, stackStart, false, "")
		if err != nil {
			return nil, err
		}
		rb, ok := rv.(value.Bool)
		if !ok {
			return nil, exception(fmt.Sprintf("%s requires a boolean right operand", n.Op))
		}
		return value.Bool{Value: rb.Value}, nil
	}

	lv, err := s.eval(n.Left, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	rv, err := s.eval(n.Right, stackStart, false, "")
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Op, lv, rv)
}

func applyBinary(op token.Operator, l, r value.Value) (value.Value, error) {
	switch op {
	case token.OpAdd:
		return applyAdd(l, r)
	case token.OpSub, token.OpMul, token.OpDiv, token.OpMod:
		return applyArith(op, l, r)
	case token.OpLt, token.OpLte, token.OpGt, token.OpGte:
		return applyOrder(op, l, r)
	case token.OpEq, token.OpNeq:
		return applyEquality(op, l, r)
	default:
		return nil, exception(fmt.Sprintf("unsupported operator %s", op))
	}
}

func applyAdd(l, r value.Value) (value.Value, error) {
	if li, ok := l.(value.Int); ok {
		if ri, ok := r.(value.Int); ok {
			return value.Int{Value: li.Value + ri.Value}, nil
		}
	}
	ll, lok := l.(value.List)
	rl, rok := r.(value.List)
	if lok && rok {
		combined := make([]*value.Slot, 0, len(ll.Elements)+len(rl.Elements))
		for _, sl := range ll.Elements {
			combined = append(combined, value.NewSlot(sl.Get()))
		}
		for _, sl := range rl.Elements {
			combined = append(combined, value.NewSlot(sl.Get()))
		}
		return value.List{Elements: combined}, nil
	}
	if lok || rok {
		return nil, exception("cannot add a list and a non-list")
	}
	return value.Str{Value: l.String() + r.String()}, nil
}

func applyArith(op token.Operator, l, r value.Value) (value.Value, error) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if !lok || !rok {
		return nil, exception(fmt.Sprintf("%s requires two integers", op))
	}
	switch op {
	case token.OpSub:
		return value.Int{Value: li.Value - ri.Value}, nil
	case token.OpMul:
		return value.Int{Value: li.Value * ri.Value}, nil
	case token.OpDiv:
		if ri.Value == 0 {
			return nil, exception("division by zero")
		}
		return value.Int{Value: li.Value / ri.Value}, nil
	case token.OpMod:
		if ri.Value == 0 {
			return nil, exception("division by zero")
		}
		return value.Int{Value: li.Value % ri.Value}, nil
	}
	return nil, exception(fmt.Sprintf("unsupported arithmetic operator %s", op))
}

func applyOrder(op token.Operator, l, r value.Value) (value.Value, error) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if !lok || !rok {
		return nil, exception(fmt.Sprintf("%s requires two integers", op))
	}
	switch op {
	case token.OpLt:
		return value.Bool{Value: li.Value < ri.Value}, nil
	case token.OpLte:
		return value.Bool{Value: li.Value <= ri.Value}, nil
	case token.OpGt:
		return value.Bool{Value: li.Value > ri.Value}, nil
	case token.OpGte:
		return value.Bool{Value: li.Value >= ri.Value}, nil
	}
	return nil, exception(fmt.Sprintf("unsupported comparison operator %s", op))
}

func applyEquality(op token.Operator, l, r value.Value) (value.Value, error) {
	var eq bool
	switch lv := l.(type) {
	case value.Int:
		rv, ok := r.(value.Int)
		if !ok {
			return nil, exception("'==' requires matching operand types")
		}
		eq = lv.Value == rv.Value
	case value.Bool:
		rv, ok := r.(value.Bool)
		if !ok {
			return nil, exception("'==' requires matching operand types")
		}
		eq = lv.Value == rv.Value
	default:
		return nil, exception("'==' is only defined on integers and booleans")
	}
	if op == token.OpNeq {
		eq = !eq
	}
	return value.Bool{Value: eq}, nil
}
