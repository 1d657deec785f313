package sexpr

import (
	"testing"
)

func TestParseAll_SimpleForm(t *testing.T) {
	src := `(node "ball" (sphere :radius 1.5))`
	p, err := NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("len(forms) = %d, want 1", len(forms))
	}
	head, ok := forms[0].Head()
	if !ok || head != "node" {
		t.Errorf("Head() = %q, %v; want \"node\", true", head, ok)
	}
	if len(forms[0].List) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(forms[0].List))
	}
	if forms[0].List[1].Kind != ValueString || forms[0].List[1].Str != "ball" {
		t.Errorf("List[1] = %+v, want string \"ball\"", forms[0].List[1])
	}
	inner := forms[0].List[2]
	innerHead, _ := inner.Head()
	if innerHead != "sphere" {
		t.Errorf("inner head = %q, want \"sphere\"", innerHead)
	}
	if inner.List[1].Kind != ValueSymbol || inner.List[1].Symbol != "radius" {
		t.Errorf("List[1] = %+v, want symbol :radius", inner.List[1])
	}
	if inner.List[2].Kind != ValueNumber || inner.List[2].Number != 1.5 {
		t.Errorf("List[2] = %+v, want number 1.5", inner.List[2])
	}
}

func TestParseAll_CommentsAndNegativeNumbers(t *testing.T) {
	src := `
; a comment
(translate -1.5 0 2.25) ; trailing comment
`
	p, err := NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("len(forms) = %d, want 1", len(forms))
	}
	if forms[0].List[1].Number != -1.5 {
		t.Errorf("List[1].Number = %f, want -1.5", forms[0].List[1].Number)
	}
}

func TestParseAll_HexColor(t *testing.T) {
	src := `(material "red" #ff0000)`
	p, err := NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	c := forms[0].List[2]
	if c.Kind != ValueColor {
		t.Fatalf("List[2].Kind = %v, want ValueColor", c.Kind)
	}
	if c.Color.R != 1 || c.Color.G != 0 || c.Color.B != 0 {
		t.Errorf("Color = %+v, want (1,0,0)", c.Color)
	}
}

func TestParseAll_UnterminatedListIsParseError(t *testing.T) {
	p, err := NewParser(`(node "x"`)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	_, err = p.ParseAll()
	if err == nil {
		t.Fatal("expected an error for unterminated list")
	}
	if _, ok := err.(ParseError); !ok {
		t.Errorf("error type = %T, want ParseError", err)
	}
}

func TestParseAll_UnexpectedClosingParen(t *testing.T) {
	p, err := NewParser(`)`)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	_, err = p.ParseAll()
	if err == nil {
		t.Fatal("expected an error for a stray ')'")
	}
}

func TestParseAll_MultipleTopLevelForms(t *testing.T) {
	src := `(node "a" (sphere :radius 1)) (node "b" (sphere :radius 2))`
	p, err := NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("len(forms) = %d, want 2", len(forms))
	}
}

func TestParseAll_VectorLiteral(t *testing.T) {
	p, err := NewParser(`(node "n" (plane :normal [0 1 0]))`)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	vec := forms[0].List[2].List[2]
	if vec.Kind != ValueVector {
		t.Fatalf("Kind = %v, want ValueVector", vec.Kind)
	}
	if vec.Vector.X != 0 || vec.Vector.Y != 1 || vec.Vector.Z != 0 {
		t.Errorf("Vector = %+v, want (0,1,0)", vec.Vector)
	}
}

func TestParseAll_VectorWrongArityIsParseError(t *testing.T) {
	p, err := NewParser(`(node "n" (plane :normal [0 1]))`)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	_, err = p.ParseAll()
	if err == nil {
		t.Fatal("expected ParseError for a 2-component vector")
	}
}
