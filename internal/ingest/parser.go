package ingest

import "io"

// Parser reads one hourly series from a source. Implementations return
// the raw values in row order; alignment and length checks happen in the
// weather package.
type Parser interface {
	Parse(r io.Reader) ([]float64, error)
}
