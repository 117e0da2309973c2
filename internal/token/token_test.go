package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"int", KwInt, true},
		{"void", KwVoid, true},
		{"while", KwWhile, true},
		{"return", KwReturn, true},
		{"Int", Invalid, false},
		{"main", Invalid, false},
	}
	for _, tc := range cases {
		got, ok := LookupKeyword(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Invalid; k < kindCount; k++ {
		if k.String() == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "Kind(?)" {
		t.Errorf("out of range kind should not panic")
	}
}

func TestOperatorClasses(t *testing.T) {
	for _, k := range []Kind{Lt, LtEq, Gt, GtEq, EqEq, BangEq} {
		if !(Token{Kind: k}).IsRelOp() {
			t.Errorf("%s should be relational", k)
		}
	}
	if !(Token{Kind: Minus}).IsAddOp() || !(Token{Kind: Slash}).IsMulOp() {
		t.Errorf("arithmetic classes wrong")
	}
	if (Token{Kind: Assign}).IsRelOp() {
		t.Errorf("= is not a comparison")
	}
	if !(Token{Kind: KwVoid}).IsType() || (Token{Kind: KwIf}).IsType() {
		t.Errorf("type specifier classes wrong")
	}
	if !(Token{Kind: KwElse}).IsKeyword() || (Token{Kind: Ident}).IsKeyword() {
		t.Errorf("keyword classes wrong")
	}
}
