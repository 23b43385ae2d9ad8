package drops

import (
	"fmt"
	"strconv"
	"strings"
)

// Eval evaluates a minimal arithmetic expression: numeric literals and
// + - * / over parenthesized terms. Anything else is rejected; this is
// deliberately not a general evaluator.
func Eval(expr string) (float64, error) {
	p := &exprParser{input: strings.ReplaceAll(expr, " ", "")}
	if p.input == "" {
		return 0, fmt.Errorf("empty expression")
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected %q in expression %q", p.input[p.pos], expr)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.input) {
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero in %q", p.input)
			}
			v /= rhs
		}
	}
	return v, nil
}

func (p *exprParser) parseFactor() (float64, error) {
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression %q", p.input)
	}
	switch p.input[p.pos] {
	case '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("missing closing parenthesis in %q", p.input)
		}
		p.pos++
		return v, nil
	case '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected number at offset %d in %q", start, p.input)
	}
	return strconv.ParseFloat(p.input[start:p.pos], 64)
}
