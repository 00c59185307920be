package domain

import "testing"

func TestNormalizeTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Hello", want: "hello"},
		{name: "strip punctuation", input: "Running!!", want: "running"},
		{name: "strip spaces", input: "  ice cream ", want: "icecream"},
		{name: "digits kept", input: "R2-D2", want: "r2d2"},
		{name: "diacritics kept", input: "Café", want: "café"},
		{name: "cyrillic kept", input: "Привет!", want: "привет"},
		{name: "apostrophe stripped", input: "don't", want: "dont"},
		{name: "empty string", input: "", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
		{name: "only spaces", input: "   \t", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeTerm(tt.input); got != tt.want {
				t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTerm_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "!!!", "Running!!", "  Ice-Cream 2 ", "ÉCOLE", "İstanbul", "ǅemal", "ﬁne"}
	for _, in := range inputs {
		once := NormalizeTerm(in)
		if twice := NormalizeTerm(once); twice != once {
			t.Errorf("NormalizeTerm not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	if got := CanonicalName("  English "); got != "english" {
		t.Errorf("CanonicalName = %q, want %q", got, "english")
	}
	if got := CanonicalName("Ice Cream"); got != "ice cream" {
		t.Errorf("CanonicalName = %q, want %q", got, "ice cream")
	}
}
