package condition

import (
	"fmt"

	"pv_simulator/internal/model"
)

// Dataset is a named auxiliary hourly series, already aligned to 8760
// values. Datasets bind positionally: the first is variable "a", the
// second "b", and so on.
type Dataset struct {
	Name   string
	Values []float64
}

// Mode selects how hours failing the condition are handled.
type Mode int

const (
	// AddZero keeps the series at full length, replacing every failing
	// hour's entry with 0 in every output series.
	AddZero Mode = iota
	// Compact drops failing hours entirely, shortening the output.
	Compact
)

// Filter evaluates a compiled statement against auxiliary datasets and
// masks parallel annual series with the per-hour result.
type Filter struct {
	stmt     *Statement
	datasets []Dataset
}

// New builds a filter. An empty expression with no datasets yields the
// identity filter (vacuously true for every hour). An expression without
// datasets, or datasets without an expression, is fatal.
func New(expr string, datasets []Dataset) (*Filter, error) {
	if expr == "" && len(datasets) == 0 {
		return &Filter{}, nil
	}
	if expr == "" || len(datasets) == 0 {
		return nil, ErrMissingFilterInput
	}
	for _, ds := range datasets {
		if len(ds.Values) != model.HoursPerYear {
			return nil, fmt.Errorf("auxiliary dataset %q has %d values, want %d",
				ds.Name, len(ds.Values), model.HoursPerYear)
		}
	}
	stmt, err := Compile(expr, len(datasets))
	if err != nil {
		return nil, err
	}
	return &Filter{stmt: stmt, datasets: datasets}, nil
}

// Mask returns the per-hour boolean result of the condition. The
// identity filter returns all-true.
func (f *Filter) Mask() []bool {
	mask := make([]bool, model.HoursPerYear)
	if f.stmt == nil {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	vals := make([]float64, len(f.datasets))
	for i := range mask {
		for k, ds := range f.datasets {
			vals[k] = ds.Values[i]
		}
		mask[i] = f.stmt.Eval(vals)
	}
	return mask
}

// Apply masks the given parallel series. Every input series must be 8760
// hours long. In AddZero mode the output keeps full length with failing
// hours zeroed; in Compact mode failing hours are dropped, and an empty
// result is fatal.
func (f *Filter) Apply(series [][]float64, mode Mode) ([][]float64, error) {
	for k, s := range series {
		if len(s) != model.HoursPerYear {
			return nil, fmt.Errorf("series %d has %d values, want %d", k, len(s), model.HoursPerYear)
		}
	}
	if f.stmt == nil && mode == AddZero {
		return series, nil
	}

	mask := f.Mask()
	out := make([][]float64, len(series))
	for k := range out {
		out[k] = make([]float64, 0, model.HoursPerYear)
	}
	for i, pass := range mask {
		switch {
		case pass:
			for k := range series {
				out[k] = append(out[k], series[k][i])
			}
		case mode == AddZero:
			for k := range out {
				out[k] = append(out[k], 0)
			}
		}
	}
	if mode == Compact && len(series) > 0 && len(out[0]) == 0 {
		return nil, ErrEmptyFilterResult
	}
	return out, nil
}

// Describe restates the condition with dataset names substituted for the
// letter variables, or "No condition" for the identity filter.
func (f *Filter) Describe() string {
	if f.stmt == nil {
		return "No condition"
	}
	names := make([]string, len(f.datasets))
	for i, ds := range f.datasets {
		names[i] = ds.Name
	}
	return f.stmt.Describe(names)
}
