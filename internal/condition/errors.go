package condition

import (
	"errors"
	"fmt"
)

// ErrMissingFilterInput is returned when auxiliary datasets are supplied
// without a conditional statement, or a statement without datasets.
var ErrMissingFilterInput = errors.New("conditional statement and auxiliary datasets must be supplied together")

// ErrEmptyFilterResult is returned when compaction removes every hour.
var ErrEmptyFilterResult = errors.New("no hours satisfy the conditional statement")

// VariableCountMismatchError reports a statement whose distinct letter
// variables do not line up with the supplied auxiliary datasets.
type VariableCountMismatchError struct {
	Referenced int
	Datasets   int
}

func (e *VariableCountMismatchError) Error() string {
	return fmt.Sprintf("conditional statement references %d variable(s) but %d auxiliary dataset(s) were supplied",
		e.Referenced, e.Datasets)
}

// InvalidExpressionError reports an unparsable conditional statement.
type InvalidExpressionError struct {
	Expr   string
	Pos    int
	Reason string
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid conditional statement %q at position %d: %s", e.Expr, e.Pos, e.Reason)
}
