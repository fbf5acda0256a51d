package index

import (
	"testing"
)

func TestParseBandExpressions(t *testing.T) {
	bandExpr, err := ParseBandExpressions([]string{"(NIR - RED) / (NIR + RED)", "swir_ratio = SWIR1 / SWIR2"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(bandExpr.Expressions) != 2 {
		t.Fatalf("expecting 2 expressions, actual %d", len(bandExpr.Expressions))
	}
	if bandExpr.ExprNames[0] != "expr0" {
		t.Errorf("expecting auto name expr0, actual %s", bandExpr.ExprNames[0])
	}
	if bandExpr.ExprNames[1] != "swir_ratio" {
		t.Errorf("expecting name swir_ratio, actual %s", bandExpr.ExprNames[1])
	}
	if len(bandExpr.VarList) != 4 {
		t.Errorf("expecting 4 variables, actual %v", bandExpr.VarList)
	}
	if len(bandExpr.ExprVarRef[0]) != 2 {
		t.Errorf("expecting 2 variables for first expression, actual %v", bandExpr.ExprVarRef[0])
	}
}

func TestParseBandExpressionsDedupesVars(t *testing.T) {
	bandExpr, err := ParseBandExpressions([]string{"NIR + NIR / RED - NIR"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(bandExpr.ExprVarRef[0]) != 2 {
		t.Errorf("expecting deduplicated variables [NIR RED], actual %v", bandExpr.ExprVarRef[0])
	}
}

func TestParseBandExpressionsRejectsNonArithmetic(t *testing.T) {
	for _, expr := range []string{
		"NIR > RED",
		"NIR && RED",
		"NIR % RED",
		"NIR ** 2",
	} {
		if _, err := ParseBandExpressions([]string{expr}); err == nil {
			t.Errorf("expecting rejection of %q", expr)
		}
	}
}

func TestParseBandExpressionsRejectsEmpty(t *testing.T) {
	if _, err := ParseBandExpressions([]string{}); err == nil {
		t.Error("expecting error for empty expression list")
	}
	if _, err := ParseBandExpressions([]string{"  "}); err == nil {
		t.Error("expecting error for blank expression")
	}
	if _, err := ParseBandExpressions([]string{"name = "}); err == nil {
		t.Error("expecting error for named empty expression")
	}
}

func TestParseBandExpressionsUnaryMinus(t *testing.T) {
	bandExpr, err := ParseBandExpressions([]string{"-NIR + 2.5 * RED"})
	if err != nil {
		t.Fatalf("expecting unary minus to parse, actual error: %v", err)
	}
	if len(bandExpr.ExprVarRef[0]) != 2 {
		t.Errorf("expecting 2 variables, actual %v", bandExpr.ExprVarRef[0])
	}
}
