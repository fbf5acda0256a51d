package index

import "fmt"

// UnknownIndexError is returned when an index name is not in the catalog.
type UnknownIndexError struct {
	Name string
}

func (e *UnknownIndexError) Error() string {
	return fmt.Sprintf("unknown spectral index: %s", e.Name)
}

// UnboundSymbolError is returned when a formula references a symbolic
// band name that has no entry in the effective band binding.
type UnboundSymbolError struct {
	Symbol string
	Expr   string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("symbol %s in expression '%s' has no band binding", e.Symbol, e.Expr)
}

// MissingBandError is returned when a binding maps a symbol to a band
// that does not exist in the input raster.
type MissingBandError struct {
	Symbol string
	Band   string
}

func (e *MissingBandError) Error() string {
	return fmt.Sprintf("band %s bound to symbol %s not found in raster", e.Band, e.Symbol)
}

// EvaluationError is returned for call-level evaluation failures such
// as inconsistent band dimensions. Per-pixel arithmetic failures are
// not errors; they produce fill values instead.
type EvaluationError struct {
	Expr   string
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation of '%s' failed: %s", e.Expr, e.Reason)
}
