package sexpr

import (
	"fmt"
	"strconv"

	"github.com/basalt-render/raymarch/pkg/mathx"
)

// ValueKind tags the variant a Value holds.
type ValueKind int

const (
	ValueList ValueKind = iota
	ValueIdent
	ValueSymbol
	ValueNumber
	ValueString
	ValueColor
	ValueVector // [x y z]
)

// Value is one parsed S-expression node: either an atom (ident, symbol,
// number, string, color) or a parenthesized list of child Values.
type Value struct {
	Kind   ValueKind
	Ident  string
	Symbol string
	Number float64
	Str    string
	Color  mathx.Color
	Vector mathx.Vec3
	List   []Value
	Line   int
	Col    int
}

// Head returns the first element's identifier if v is a non-empty list
// headed by an identifier (the common "(tag ...)" form), and ok=false
// otherwise.
func (v Value) Head() (string, bool) {
	if v.Kind != ValueList || len(v.List) == 0 || v.List[0].Kind != ValueIdent {
		return "", false
	}
	return v.List[0].Ident, true
}

// Parser turns a token stream into top-level Values.
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser creates a Parser over src.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// ParseAll parses every top-level form in the source, in order.
func (p *Parser) ParseAll() ([]Value, error) {
	var forms []Value
	for p.tok.Kind != TokenEOF {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

func (p *Parser) parseValue() (Value, error) {
	line, col := p.tok.Line, p.tok.Col
	switch p.tok.Kind {
	case TokenLParen:
		return p.parseList(line, col)
	case TokenLBracket:
		return p.parseVector(line, col)
	case TokenIdent:
		v := Value{Kind: ValueIdent, Ident: p.tok.Text, Line: line, Col: col}
		return v, p.next()
	case TokenSymbol:
		v := Value{Kind: ValueSymbol, Symbol: p.tok.Text, Line: line, Col: col}
		return v, p.next()
	case TokenNumber:
		n, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			return Value{}, mathx.BadLiteral{Kind: "number", Value: p.tok.Text}
		}
		v := Value{Kind: ValueNumber, Number: n, Line: line, Col: col}
		return v, p.next()
	case TokenString:
		v := Value{Kind: ValueString, Str: p.tok.Text, Line: line, Col: col}
		return v, p.next()
	case TokenColor:
		c, err := mathx.ParseHexColor(p.tok.Text)
		if err != nil {
			return Value{}, err
		}
		v := Value{Kind: ValueColor, Color: c, Line: line, Col: col}
		return v, p.next()
	case TokenRParen:
		return Value{}, ParseError{Line: line, Col: col, Msg: "unexpected ')'"}
	default:
		return Value{}, ParseError{Line: line, Col: col, Msg: "unexpected end of input"}
	}
}

func (p *Parser) parseVector(line, col int) (Value, error) {
	if err := p.next(); err != nil { // consume '['
		return Value{}, err
	}
	var nums []float64
	for p.tok.Kind != TokenRBracket {
		if p.tok.Kind != TokenNumber {
			return Value{}, ParseError{Line: p.tok.Line, Col: p.tok.Col, Msg: "vector literal may only contain numbers"}
		}
		n, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			return Value{}, mathx.BadLiteral{Kind: "number", Value: p.tok.Text}
		}
		nums = append(nums, n)
		if err := p.next(); err != nil {
			return Value{}, err
		}
	}
	if err := p.next(); err != nil { // consume ']'
		return Value{}, err
	}
	if len(nums) != 3 {
		return Value{}, ParseError{Line: line, Col: col, Msg: fmt.Sprintf("vector literal must have exactly 3 components, got %d", len(nums))}
	}
	return Value{Kind: ValueVector, Vector: mathx.NewVec3(nums[0], nums[1], nums[2]), Line: line, Col: col}, nil
}

func (p *Parser) parseList(line, col int) (Value, error) {
	if err := p.next(); err != nil { // consume '('
		return Value{}, err
	}
	var items []Value
	for p.tok.Kind != TokenRParen {
		if p.tok.Kind == TokenEOF {
			return Value{}, ParseError{Line: line, Col: col, Msg: "unterminated list: missing ')'"}
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	if err := p.next(); err != nil { // consume ')'
		return Value{}, err
	}
	return Value{Kind: ValueList, List: items, Line: line, Col: col}, nil
}

// String formats a Value back into a readable S-expression, mainly useful
// for error messages that need to quote an offending form.
func (v Value) String() string {
	switch v.Kind {
	case ValueIdent:
		return v.Ident
	case ValueSymbol:
		return ":" + v.Symbol
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueString:
		return fmt.Sprintf("%q", v.Str)
	case ValueColor:
		return "#color"
	case ValueVector:
		return fmt.Sprintf("[%g %g %g]", v.Vector.X, v.Vector.Y, v.Vector.Z)
	case ValueList:
		s := "("
		for i, item := range v.List {
			if i > 0 {
				s += " "
			}
			s += item.String()
		}
		return s + ")"
	}
	return "?"
}
