package constprop

import "github.com/taclab/tacflow/ir"

// Evaluate implements spec §4.3's evaluate(e, in): pure, total, operating
// entirely on the integer lattice.
func Evaluate(e ir.Expr, in CPFact) Value {
	switch v := e.(type) {
	case ir.Lit:
		return Const(v.Value)
	case ir.VarExpr:
		if !v.V.CanHoldInt() {
			return NAC()
		}
		return in.Get(v.V)
	case ir.Binary:
		return evalBinary(v, in)
	default:
		// field access, invocation, new, array access (spec §4.3: "any other
		// expression form"). In this IR those never appear as an Assign.RHS
		// (they are their own Stmt kinds), but the rule is kept total.
		return NAC()
	}
}

func evalBinary(b ir.Binary, in CPFact) Value {
	l := Evaluate(b.L, in)
	r := Evaluate(b.R, in)

	// Divide/modulo by a constant zero is UNDEF regardless of the dividend's
	// lattice value — including when the dividend is NAC. Spec §9 flags a
	// naive "any operand NAC -> NAC" rule as wrong for exactly this case, so
	// the zero-divisor check must run before the NAC check below.
	isDivOrRem := b.Op == ir.DIV || b.Op == ir.REM
	if isDivOrRem && isConstZero(r) {
		return Undef()
	}

	if l.IsNAC() || r.IsNAC() {
		return NAC()
	}
	if l.IsConst() && r.IsConst() {
		lv, _ := l.Int()
		rv, _ := r.Int()
		return applyOp(b.Op, lv, rv)
	}

	return Undef()
}

func isConstZero(v Value) bool {
	n, ok := v.Int()
	return ok && n == 0
}

func applyOp(op ir.BinOp, l, r int32) Value {
	switch op {
	case ir.ADD:
		return Const(l + r)
	case ir.SUB:
		return Const(l - r)
	case ir.MUL:
		return Const(l * r)
	case ir.DIV:
		if r == 0 {
			return Undef()
		}
		return Const(l / r)
	case ir.REM:
		if r == 0 {
			return Undef()
		}
		return Const(l % r)
	case ir.AND:
		return Const(l & r)
	case ir.OR:
		return Const(l | r)
	case ir.XOR:
		return Const(l ^ r)
	case ir.SHL:
		return Const(l << (uint32(r) & 31))
	case ir.SHR:
		return Const(l >> (uint32(r) & 31))
	case ir.USHR:
		return Const(int32(uint32(l) >> (uint32(r) & 31)))
	case ir.EQ:
		return boolConst(l == r)
	case ir.NE:
		return boolConst(l != r)
	case ir.LT:
		return boolConst(l < r)
	case ir.LE:
		return boolConst(l <= r)
	case ir.GT:
		return boolConst(l > r)
	case ir.GE:
		return boolConst(l >= r)
	default:
		return NAC()
	}
}

func boolConst(b bool) Value {
	if b {
		return Const(1)
	}
	return Const(0)
}
