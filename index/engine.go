package index

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/edisonguo/govaluate"
)

// Options controls per-call evaluation behaviour. Fill is the value
// written for pixels where the expression is not computable (no-data
// inputs, division by zero); Workers bounds row-level parallelism.
type Options struct {
	Fill    float64
	Workers int
}

// DefaultOptions fills non-computable pixels with NaN and evaluates on
// all CPUs. Parallelism is a throughput knob only; output is identical
// for any worker count.
func DefaultOptions() Options {
	return Options{Fill: math.NaN(), Workers: runtime.NumCPU()}
}

type boundPlane struct {
	symbol string
	data   []float64
	scale  float64
}

// Evaluate computes a registered index over a raster with the catalog's
// default band binding, optionally overridden per symbol.
func Evaluate(name string, r *Raster, overrides BandBinding) (*IndexRaster, error) {
	return EvaluateWith(name, r, overrides, DefaultOptions())
}

func EvaluateWith(name string, r *Raster, overrides BandBinding, opts Options) (*IndexRaster, error) {
	def, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	binding := def.Binding
	if len(overrides) > 0 {
		binding = BandBinding{}
		for sym, ref := range def.Binding {
			binding[sym] = ref
		}
		for sym, ref := range overrides {
			binding[sym] = ref
		}
	}

	planes, err := resolveBinding(def.ExprText, def.vars, binding, r)
	if err != nil {
		return nil, err
	}

	data, err := evalPlanes(def.expr, def.ExprText, planes, r, opts)
	if err != nil {
		return nil, err
	}

	return &IndexRaster{
		Name:   def.Name,
		Width:  r.Width,
		Height: r.Height,
		Fill:   opts.Fill,
		Data:   data,
	}, nil
}

// EvaluateExpr computes a caller-supplied band expression with an
// explicit binding. The expression may carry a 'name=' prefix naming
// the output band.
func EvaluateExpr(exprText string, r *Raster, binding BandBinding) (*IndexRaster, error) {
	return EvaluateExprWith(exprText, r, binding, DefaultOptions())
}

func EvaluateExprWith(exprText string, r *Raster, binding BandBinding, opts Options) (*IndexRaster, error) {
	bandExpr, err := ParseBandExpressions([]string{exprText})
	if err != nil {
		return nil, err
	}

	planes, err := resolveBinding(bandExpr.ExprText[0], bandExpr.ExprVarRef[0], binding, r)
	if err != nil {
		return nil, err
	}

	data, err := evalPlanes(bandExpr.Expressions[0], bandExpr.ExprText[0], planes, r, opts)
	if err != nil {
		return nil, err
	}

	return &IndexRaster{
		Name:   bandExpr.ExprNames[0],
		Width:  r.Width,
		Height: r.Height,
		Fill:   opts.Fill,
		Data:   data,
	}, nil
}

// resolveBinding maps every symbol referenced by an expression to a
// band plane of the input raster. Lookup failures are call-level and
// fail fast; no partial output is produced.
func resolveBinding(exprText string, vars []string, binding BandBinding, r *Raster) ([]boundPlane, error) {
	planes := make([]boundPlane, len(vars))
	for i, sym := range vars {
		ref, ok := binding[sym]
		if !ok {
			return nil, &UnboundSymbolError{Symbol: sym, Expr: exprText}
		}
		data, ok := r.Band(ref.Band)
		if !ok {
			return nil, &MissingBandError{Symbol: sym, Band: ref.Band}
		}
		if len(data) != r.Width*r.Height {
			return nil, &EvaluationError{
				Expr:   exprText,
				Reason: fmt.Sprintf("band %s has %d samples, grid is %dx%d", ref.Band, len(data), r.Width, r.Height),
			}
		}
		planes[i] = boundPlane{symbol: sym, data: data, scale: ref.scale()}
	}
	return planes, nil
}

func evalPlanes(expr *govaluate.EvaluableExpression, exprText string, planes []boundPlane, r *Raster, opts Options) ([]float64, error) {
	out := make([]float64, r.Width*r.Height)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > r.Height {
		workers = r.Height
	}
	if workers < 1 {
		return out, nil
	}

	rowsPerWorker := (r.Height + workers - 1) / workers
	errChan := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		rowBegin := w * rowsPerWorker
		rowEnd := rowBegin + rowsPerWorker
		if rowEnd > r.Height {
			rowEnd = r.Height
		}
		if rowBegin >= rowEnd {
			break
		}

		wg.Add(1)
		go func(rowBegin, rowEnd int) {
			defer wg.Done()
			params := make(map[string]interface{}, len(planes))
			for ip := rowBegin * r.Width; ip < rowEnd*r.Width; ip++ {
				noData := false
				for _, plane := range planes {
					v := plane.data[ip]
					if r.IsNoData(v) {
						noData = true
						break
					}
					params[plane.symbol] = v * plane.scale
				}
				if noData {
					out[ip] = opts.Fill
					continue
				}

				result, err := expr.Evaluate(params)
				if err != nil {
					errChan <- &EvaluationError{Expr: exprText, Reason: err.Error()}
					return
				}

				var val float64
				switch v := result.(type) {
				case float64:
					val = v
				case float32:
					val = float64(v)
				default:
					errChan <- &EvaluationError{Expr: exprText, Reason: fmt.Sprintf("non-numeric result %v", result)}
					return
				}

				// Division by zero over masked or empty pixels is a
				// per-pixel condition, not a call failure.
				if math.IsNaN(val) || math.IsInf(val, 0) {
					val = opts.Fill
				}
				out[ip] = val
			}
		}(rowBegin, rowEnd)
	}
	wg.Wait()

	select {
	case err := <-errChan:
		return nil, err
	default:
	}

	return out, nil
}
