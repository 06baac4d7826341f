// Package condition compiles a small boolean expression language over
// single-letter variables (a, b, c, ...) bound positionally to auxiliary
// hourly datasets, and filters parallel annual series with the result.
//
// The language supports numeric literals, comparison chains in the
// Python style (18<a<23), and the keywords "and" and "or" with the usual
// precedence. Statements are compiled once into an AST and evaluated per
// hour, so no general-purpose interpreter is ever invoked.
package condition

import (
	"regexp"
	"strconv"
	"strings"
)

// Statement is a compiled conditional expression.
type Statement struct {
	src  string
	root boolNode
	vars map[int]bool // distinct variable indices referenced
}

// Compile parses expr and checks that the number of distinct letter
// variables equals datasetCount.
func Compile(expr string, datasetCount int) (*Statement, error) {
	src := strings.ToLower(strings.TrimSpace(expr))
	p := &parser{src: src}
	p.next()
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.kind != tokEOF {
		return nil, &InvalidExpressionError{Expr: src, Pos: p.tok.pos, Reason: "unexpected trailing input"}
	}

	st := &Statement{src: src, root: root, vars: map[int]bool{}}
	collectVars(root, st.vars)

	if len(st.vars) != datasetCount {
		return nil, &VariableCountMismatchError{Referenced: len(st.vars), Datasets: datasetCount}
	}
	for idx := range st.vars {
		if idx >= datasetCount {
			return nil, &VariableCountMismatchError{Referenced: len(st.vars), Datasets: datasetCount}
		}
	}
	return st, nil
}

// Eval evaluates the statement with each variable bound to its value.
// vals[k] is the value of the k-th dataset at the hour being tested.
func (s *Statement) Eval(vals []float64) bool {
	return s.root.truth(vals)
}

var letterVar = regexp.MustCompile(`\b([a-z])\b`)

// Describe restates the condition with letter variables replaced by the
// dataset names, for human-readable output.
func (s *Statement) Describe(names []string) string {
	return letterVar.ReplaceAllStringFunc(s.src, func(m string) string {
		idx := int(m[0] - 'a')
		if idx >= 0 && idx < len(names) {
			return names[idx]
		}
		return m
	})
}

// --- AST ---

type boolNode interface {
	truth(vals []float64) bool
}

type numNode interface {
	value(vals []float64) float64
}

type numLiteral float64

func (n numLiteral) value([]float64) float64 { return float64(n) }

type varRef int

func (v varRef) value(vals []float64) float64 { return vals[v] }

type cmpOp int

const (
	cmpLT cmpOp = iota
	cmpLE
	cmpGT
	cmpGE
	cmpEQ
	cmpNE
)

func (op cmpOp) holds(a, b float64) bool {
	switch op {
	case cmpLT:
		return a < b
	case cmpLE:
		return a <= b
	case cmpGT:
		return a > b
	case cmpGE:
		return a >= b
	case cmpEQ:
		return a == b
	default:
		return a != b
	}
}

// compareNode is a comparison chain: operands[0] ops[0] operands[1] ...
// A chain holds only if every adjacent pair holds.
type compareNode struct {
	operands []numNode
	ops      []cmpOp
}

func (c *compareNode) truth(vals []float64) bool {
	for i, op := range c.ops {
		if !op.holds(c.operands[i].value(vals), c.operands[i+1].value(vals)) {
			return false
		}
	}
	return true
}

type logicalKind int

const (
	logicalAnd logicalKind = iota
	logicalOr
)

type logicalNode struct {
	kind logicalKind
	kids []boolNode
}

func (l *logicalNode) truth(vals []float64) bool {
	if l.kind == logicalAnd {
		for _, k := range l.kids {
			if !k.truth(vals) {
				return false
			}
		}
		return true
	}
	for _, k := range l.kids {
		if k.truth(vals) {
			return true
		}
	}
	return false
}

func collectVars(n boolNode, out map[int]bool) {
	switch t := n.(type) {
	case *compareNode:
		for _, o := range t.operands {
			if v, ok := o.(varRef); ok {
				out[int(v)] = true
			}
		}
	case *logicalNode:
		for _, k := range t.kids {
			collectVars(k, out)
		}
	}
}

// --- lexer ---

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokVar
	tokAnd
	tokOr
	tokCmp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	pos  int
	num  float64
	vidx int
	cmp  cmpOp
}

type parser struct {
	src string
	off int
	tok token
	err *InvalidExpressionError
}

func (p *parser) fail(pos int, reason string) {
	if p.err == nil {
		p.err = &InvalidExpressionError{Expr: p.src, Pos: pos, Reason: reason}
	}
	p.tok = token{kind: tokEOF, pos: pos}
}

// next scans the following token into p.tok.
func (p *parser) next() {
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}

	c := p.src[p.off]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		end := p.off
		for end < len(p.src) && (p.src[end] >= '0' && p.src[end] <= '9' || p.src[end] == '.') {
			end++
		}
		num, err := strconv.ParseFloat(p.src[p.off:end], 64)
		if err != nil {
			p.fail(start, "malformed number")
			return
		}
		p.off = end
		p.tok = token{kind: tokNumber, pos: start, num: num}
	case c >= 'a' && c <= 'z':
		end := p.off
		for end < len(p.src) && p.src[end] >= 'a' && p.src[end] <= 'z' {
			end++
		}
		word := p.src[p.off:end]
		p.off = end
		switch {
		case word == "and":
			p.tok = token{kind: tokAnd, pos: start}
		case word == "or":
			p.tok = token{kind: tokOr, pos: start}
		case len(word) == 1:
			p.tok = token{kind: tokVar, pos: start, vidx: int(word[0] - 'a')}
		default:
			p.fail(start, "unknown identifier "+strconv.Quote(word))
		}
	case c == '(':
		p.off++
		p.tok = token{kind: tokLParen, pos: start}
	case c == ')':
		p.off++
		p.tok = token{kind: tokRParen, pos: start}
	case c == '<' || c == '>' || c == '=' || c == '!':
		op, n, ok := scanCmp(p.src[p.off:])
		if !ok {
			p.fail(start, "malformed comparison operator")
			return
		}
		p.off += n
		p.tok = token{kind: tokCmp, pos: start, cmp: op}
	default:
		p.fail(start, "unexpected character "+strconv.QuoteRune(rune(c)))
	}
}

func scanCmp(s string) (cmpOp, int, bool) {
	if len(s) >= 2 {
		switch s[:2] {
		case "<=":
			return cmpLE, 2, true
		case ">=":
			return cmpGE, 2, true
		case "==":
			return cmpEQ, 2, true
		case "!=":
			return cmpNE, 2, true
		}
	}
	switch s[0] {
	case '<':
		return cmpLT, 1, true
	case '>':
		return cmpGT, 1, true
	}
	return 0, 0, false
}

// --- grammar ---

func (p *parser) parseOr() (boolNode, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	kids := []boolNode{first}
	for p.tok.kind == tokOr {
		p.next()
		kid, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	if len(kids) == 1 {
		return first, nil
	}
	return &logicalNode{kind: logicalOr, kids: kids}, nil
}

func (p *parser) parseAnd() (boolNode, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	kids := []boolNode{first}
	for p.tok.kind == tokAnd {
		p.next()
		kid, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	if len(kids) == 1 {
		return first, nil
	}
	return &logicalNode{kind: logicalAnd, kids: kids}, nil
}

// parseTerm handles a parenthesized expression or a comparison chain.
func (p *parser) parseTerm() (boolNode, error) {
	if p.tok.kind == tokLParen {
		pos := p.tok.pos
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, &InvalidExpressionError{Expr: p.src, Pos: pos, Reason: "missing closing parenthesis"}
		}
		p.next()
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (boolNode, error) {
	first, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	node := &compareNode{operands: []numNode{first}}
	for p.tok.kind == tokCmp {
		op := p.tok.cmp
		p.next()
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		node.ops = append(node.ops, op)
		node.operands = append(node.operands, operand)
	}
	if len(node.ops) == 0 {
		return nil, &InvalidExpressionError{Expr: p.src, Pos: p.tok.pos, Reason: "expected comparison operator"}
	}
	return node, nil
}

func (p *parser) parseOperand() (numNode, error) {
	switch p.tok.kind {
	case tokNumber:
		n := numLiteral(p.tok.num)
		p.next()
		return n, p.takeErr()
	case tokVar:
		v := varRef(p.tok.vidx)
		p.next()
		return v, p.takeErr()
	default:
		if p.err != nil {
			return nil, p.err
		}
		return nil, &InvalidExpressionError{Expr: p.src, Pos: p.tok.pos, Reason: "expected number or variable"}
	}
}

func (p *parser) takeErr() error {
	if p.err != nil {
		return p.err
	}
	return nil
}
