package fix

import "testing"

func TestBalanced(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", true},
		{"simple profile", "Profile: Foo\nParent: Patient\n* name 1..1\n", true},
		{"balanced parens and brackets", "(a[b]{c})", true},
		{"unbalanced paren", "(a", false},
		{"unbalanced bracket", "a]", false},
		{"mismatched kinds", "(a]", false},
		{"bracket inside string literal ignored", `"unterminated ( in string"`, true},
		{"unterminated string", `"no closing quote`, false},
		{"escaped quote inside string", `"a \" still open"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := balanced([]byte(tt.in)); got != tt.want {
				t.Errorf("balanced(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
