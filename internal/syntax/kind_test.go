package syntax

import "testing"

func TestKindClassification(t *testing.T) {
	cases := []struct {
		name      string
		kind      Kind
		isTrivia  bool
		isKeyword bool
		isFlag    bool
		isPunct   bool
		isLiteral bool
		isNode    bool
	}{
		{"whitespace", Whitespace, true, false, false, false, false, false},
		{"newline", Newline, true, false, false, false, false, false},
		{"profile keyword", ProfileKw, false, true, false, false, false, false},
		{"from keyword", FromKw, false, true, false, false, false, false},
		{"ms flag", MsFlag, false, false, true, false, false, false},
		{"modifier flag", ModifierFlag, false, false, true, false, false, false},
		{"colon", Colon, false, false, false, true, false, false},
		{"plus out of range", Plus, false, false, false, true, false, false},
		{"plus equals out of range", PlusEquals, false, false, false, true, false, false},
		{"string literal", String, false, false, false, false, true, false},
		{"ident not literal", Ident, false, false, false, false, false, false},
		{"regex not literal", Regex, false, false, false, false, false, false},
		{"unit not literal", Unit, false, false, false, false, false, false},
		{"profile node", ProfileNode, false, false, false, false, false, true},
		{"document node", Document, false, false, false, false, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.kind.IsTrivia(); got != c.isTrivia {
				t.Errorf("IsTrivia() = %v, want %v", got, c.isTrivia)
			}
			if got := c.kind.IsKeyword(); got != c.isKeyword {
				t.Errorf("IsKeyword() = %v, want %v", got, c.isKeyword)
			}
			if got := c.kind.IsFlag(); got != c.isFlag {
				t.Errorf("IsFlag() = %v, want %v", got, c.isFlag)
			}
			if got := c.kind.IsPunct(); got != c.isPunct {
				t.Errorf("IsPunct() = %v, want %v", got, c.isPunct)
			}
			if got := c.kind.IsLiteral(); got != c.isLiteral {
				t.Errorf("IsLiteral() = %v, want %v", got, c.isLiteral)
			}
			if got := c.kind.IsNode(); got != c.isNode {
				t.Errorf("IsNode() = %v, want %v", got, c.isNode)
			}
		})
	}
}

func TestLookupKeywordRoundTrip(t *testing.T) {
	for text, kind := range keywordLookup {
		got, ok := LookupKeyword(text)
		if !ok {
			t.Fatalf("LookupKeyword(%q) not found", text)
		}
		if got != kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", text, got, kind)
		}
	}
}

func TestKeywordTextCoversFlags(t *testing.T) {
	for _, k := range []Kind{MsFlag, SuFlag, TuFlag, NFlag, DFlag, ModifierFlag} {
		if k.KeywordText() == "" {
			t.Errorf("KeywordText() empty for flag kind %v", k)
		}
	}
}
