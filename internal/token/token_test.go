package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"class", CLASS},
		{"CLASS", CLASS},
		{"Inherits", INHERITS},
		{"isvoid", ISVOID},
		{"true", BOOL_CONST},
		{"tRUE", BOOL_CONST},
		{"True", TYPEID},
		{"False", TYPEID},
		{"Object", TYPEID},
		{"SELF_TYPE", TYPEID},
		{"self", OBJECTID},
		{"counter", OBJECTID},
		{"x2", OBJECTID},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}
