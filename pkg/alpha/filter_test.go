package alpha

import (
	"strings"
	"testing"
)

func TestNormalize_Letters(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		lower := string(c)
		upper := strings.ToUpper(lower)

		got := Normalize(lower)
		if got.Kind() != KindLetter || got.Letter() != c {
			t.Errorf("Normalize(%q) = %v, want letter(%s)", lower, got, lower)
		}

		if gotUpper := Normalize(upper); !gotUpper.Equal(got) {
			t.Errorf("Normalize(%q) = %v, want %v", upper, gotUpper, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filter
	}{
		{name: "empty", raw: "", want: None()},
		{name: "digit", raw: "7", want: Symbols()},
		{name: "symbols value", raw: SymbolsValue, want: Symbols()},
		{name: "hash", raw: "#", want: Symbols()},
		{name: "punctuation", raw: "!abc", want: Symbols()},
		{name: "space", raw: " a", want: Symbols()},
		{name: "multi-byte", raw: "émile", want: Symbols()},
		{name: "cjk", raw: "日本", want: Symbols()},
		{name: "truncates", raw: "bravo", want: mustLetter(t, 'b')},
		{name: "truncates upper", raw: "ZULU", want: mustLetter(t, 'z')},
		{name: "quote injection", raw: "' OR 1=1 --", want: Symbols()},
		{name: "letter then injection", raw: "a' OR '1'='1", want: mustLetter(t, 'a')},
		{name: "null byte", raw: "\x00", want: Symbols()},
		{name: "legacy sentinel", raw: "sym", want: Symbols()},
		{name: "legacy sentinel upper", raw: "SYM", want: Symbols()},
		{name: "legacy sentinel prefix only", raw: "symbol", want: mustLetter(t, 's')},
		{name: "s alone", raw: "s", want: mustLetter(t, 's')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	for _, f := range Alphabet() {
		if got := Normalize(f.Value()); !got.Equal(f) {
			t.Errorf("Normalize(%q) = %v, want %v", f.Value(), got, f)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "a", "Q", "9", "%", "hello", "Ünïcode", SymbolsValue}

	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(first.Value())
		if !second.Equal(first) {
			t.Errorf("Normalize(Normalize(%q).Value()) = %v, want %v", in, second, first)
		}
	}
}

func TestLetterFilter(t *testing.T) {
	if _, ok := LetterFilter('1'); ok {
		t.Error("LetterFilter('1') ok = true, want false")
	}

	f, ok := LetterFilter('M')
	if !ok {
		t.Fatal("LetterFilter('M') ok = false, want true")
	}
	if f.Letter() != 'm' {
		t.Errorf("LetterFilter('M').Letter() = %q, want 'm'", f.Letter())
	}
}

func TestFilter_ZeroValueIsNone(t *testing.T) {
	var f Filter
	if !f.IsNone() {
		t.Error("zero Filter IsNone() = false, want true")
	}
	if f.Value() != "" {
		t.Errorf("zero Filter Value() = %q, want empty", f.Value())
	}
}

func TestAlphabet(t *testing.T) {
	alphabet := Alphabet()

	if len(alphabet) != 28 {
		t.Fatalf("len(Alphabet()) = %d, want 28", len(alphabet))
	}
	if !alphabet[0].IsNone() {
		t.Errorf("Alphabet()[0] = %v, want none", alphabet[0])
	}
	if alphabet[1].Kind() != KindSymbols {
		t.Errorf("Alphabet()[1] = %v, want symbols", alphabet[1])
	}
	if alphabet[2].Letter() != 'a' || alphabet[27].Letter() != 'z' {
		t.Errorf("Alphabet() letters = %v..%v, want a..z", alphabet[2], alphabet[27])
	}
}

func mustLetter(t *testing.T, c byte) Filter {
	t.Helper()
	f, ok := LetterFilter(c)
	if !ok {
		t.Fatalf("LetterFilter(%q) failed", c)
	}
	return f
}
