package normalize

import "testing"

func TestIdentity(t *testing.T) {
	if got := Identity("Running"); got != "Running" {
		t.Errorf("Identity(%q) = %q, want unchanged", "Running", got)
	}
}

func TestLowercase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"A", "a"},
		{"Hello", "hello"},
		{"already", "already"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Lowercase(tt.in); got != tt.want {
			t.Errorf("Lowercase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plural s", "cats", "cat"},
		{"ing suffix", "running", "runn"},
		{"already lowercase no rule applies", "the", "the"},
		{"uppercase input is lowercased first", "A", "a"},
		{"ational", "relational", "relate"},
		{"short word below minLen is left alone", "as", "as"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stem(tt.in); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
