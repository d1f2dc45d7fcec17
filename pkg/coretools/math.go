package coretools

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

const maxFactorial = 10000

// EvaluateMath evaluates a math request in one of three modes:
//   - "eval": arithmetic over digits, parentheses and the + - * / operators
//   - "sqrt": square root of a number
//   - "factorial": factorial of a small non-negative integer
func EvaluateMath(expression, mode string) (string, error) {
	switch mode {
	case "sqrt":
		n, err := strconv.ParseFloat(strings.TrimSpace(expression), 64)
		if err != nil {
			return "", fmt.Errorf("not a number: %q", expression)
		}
		if n < 0 {
			return "", fmt.Errorf("sqrt of negative number: %v", n)
		}
		return formatNumber(math.Sqrt(n)), nil

	case "factorial":
		n, err := strconv.Atoi(strings.TrimSpace(expression))
		if err != nil {
			return "", fmt.Errorf("not an integer: %q", expression)
		}
		if n < 0 || n > maxFactorial {
			return "", fmt.Errorf("n out of range: %d", n)
		}
		return new(big.Int).MulRange(1, int64(max(n, 1))).String(), nil

	case "eval":
		for _, r := range expression {
			if !strings.ContainsRune("0123456789+-*/(). ", r) {
				return "", fmt.Errorf("disallowed character: %q", r)
			}
		}
		result, err := evalExpr(expression)
		if err != nil {
			return "", err
		}
		return formatNumber(result), nil

	default:
		return "", fmt.Errorf("unknown mode: %q", mode)
	}
}

// formatNumber renders a float without a trailing .0 for integral values.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// evalExpr parses and evaluates an arithmetic expression with the usual
// precedence rules. Recursive descent over the grammar:
//
//	expr   = term   { ("+" | "-") term }
//	term   = unary  { ("*" | "/") unary }
//	unary  = [ "-" | "+" ] factor
//	factor = number | "(" expr ")"
func evalExpr(input string) (float64, error) {
	p := &exprParser{input: input}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected input at position %d", p.pos)
	}
	return result, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parseFactor()
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis at position %d", p.pos)
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at position %d", start)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
