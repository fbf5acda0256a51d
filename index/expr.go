package index

import (
	"fmt"
	"strings"

	"github.com/edisonguo/govaluate"
)

// BandExpressions holds a set of compiled band-arithmetic expressions.
// VarList is the union of symbolic band names referenced across all
// expressions; ExprVarRef holds the names referenced per expression.
type BandExpressions struct {
	Expressions []*govaluate.EvaluableExpression
	ExprText    []string
	ExprNames   []string
	ExprVarRef  [][]string
	VarList     []string
}

// ParseBandExpressions compiles a list of band math strings. Each entry
// is either a plain expression or 'name=expression'. Only arithmetic
// over band symbols and numeric literals is accepted; comparators,
// logical operators and function calls are rejected.
func ParseBandExpressions(bands []string) (*BandExpressions, error) {
	bandExpr := &BandExpressions{}
	varFound := make(map[string]bool)

	for ib, bandRaw := range bands {
		band := strings.TrimSpace(bandRaw)
		if len(band) == 0 {
			continue
		}

		name := fmt.Sprintf("expr%d", ib)
		if iEq := strings.Index(band, "="); iEq >= 0 {
			name = strings.TrimSpace(band[:iEq])
			band = strings.TrimSpace(band[iEq+1:])
			if len(name) == 0 || len(band) == 0 {
				return nil, fmt.Errorf("invalid band expression: %s", bandRaw)
			}
		}

		expr, err := govaluate.NewEvaluableExpression(band)
		if err != nil {
			return nil, fmt.Errorf("parsing error in band expression '%s': %v", band, err)
		}

		if err := checkExprTokens(expr); err != nil {
			return nil, fmt.Errorf("band expression '%s': %v", band, err)
		}

		bandExpr.Expressions = append(bandExpr.Expressions, expr)
		bandExpr.ExprText = append(bandExpr.ExprText, band)
		bandExpr.ExprNames = append(bandExpr.ExprNames, name)

		exprVarFound := make(map[string]bool)
		var exprVars []string
		for _, variable := range expr.Vars() {
			if !exprVarFound[variable] {
				exprVarFound[variable] = true
				exprVars = append(exprVars, variable)
			}
			if !varFound[variable] {
				varFound[variable] = true
				bandExpr.VarList = append(bandExpr.VarList, variable)
			}
		}
		bandExpr.ExprVarRef = append(bandExpr.ExprVarRef, exprVars)
	}

	if len(bandExpr.Expressions) == 0 {
		return nil, fmt.Errorf("no band expressions found")
	}

	return bandExpr, nil
}

// checkExprTokens restricts expressions to +, -, *, / over variables
// and numeric literals.
func checkExprTokens(expr *govaluate.EvaluableExpression) error {
	for _, token := range expr.Tokens() {
		switch token.Kind {
		case govaluate.NUMERIC, govaluate.VARIABLE, govaluate.CLAUSE, govaluate.CLAUSE_CLOSE:
		case govaluate.PREFIX:
			if op, ok := token.Value.(string); !ok || op != "-" {
				return fmt.Errorf("prefix operator not supported: %v", token.Value)
			}
		case govaluate.MODIFIER:
			op, ok := token.Value.(string)
			if !ok {
				return fmt.Errorf("operator not supported: %v", token.Value)
			}
			switch op {
			case "+", "-", "*", "/":
			default:
				return fmt.Errorf("operator not supported: %s", op)
			}
		default:
			return fmt.Errorf("token not supported: %v", token.Value)
		}
	}
	return nil
}
