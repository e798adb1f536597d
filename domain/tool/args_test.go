package tool

import "testing"

func TestArgsString(t *testing.T) {
	args := Args{
		"name":    "curiosity",
		"padded":  "  spirit  ",
		"blank":   "   ",
		"notText": 42,
	}

	if got, ok := args.String("name"); !ok || got != "curiosity" {
		t.Fatalf("String(name) = %q, %v", got, ok)
	}
	if got, ok := args.String("padded"); !ok || got != "spirit" {
		t.Fatalf("String(padded) = %q, %v; want trimmed value", got, ok)
	}
	if _, ok := args.String("blank"); ok {
		t.Fatal("blank string should not count as present")
	}
	if _, ok := args.String("notText"); ok {
		t.Fatal("non-string value should not count as present")
	}
	if _, ok := args.String("missing"); ok {
		t.Fatal("missing key should not count as present")
	}
}

func TestArgsInt(t *testing.T) {
	args := Args{
		"fromJSON": float64(7),
		"fromGo":   3,
		"text":     "12",
	}

	if got := args.Int("fromJSON", 0); got != 7 {
		t.Fatalf("Int(fromJSON) = %d, want 7", got)
	}
	if got := args.Int("fromGo", 0); got != 3 {
		t.Fatalf("Int(fromGo) = %d, want 3", got)
	}
	if got := args.Int("text", 9); got != 9 {
		t.Fatalf("Int(text) = %d, want default 9", got)
	}
	if got := args.Int("missing", 5); got != 5 {
		t.Fatalf("Int(missing) = %d, want default 5", got)
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-15", true},
		{"2024-12-31", true},
		{"2024-13-01", false}, // month out of range
		{"2024-02-30", false}, // day out of range
		{"2024-1-15", false},  // missing zero padding
		{"15-01-2024", false},
		{"not-a-date", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := ValidDate(tc.date); got != tc.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}
