package coord

import "testing"

// Test exact string round trips for mm values with up to six fractional
// digits
func TestFromStringRoundTrip(t *testing.T) {
	tests := []string{
		"0",
		"1",
		"-1",
		"100",
		"1.6",
		"0.25",
		"-0.8",
		"1.27",
		"0.000001",
		"-0.000001",
		"20.32",
		"3.175",
		"1234.567891",
	}

	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			c, err := FromString(tt)
			if err != nil {
				t.Fatalf("FromString(%q) error: %v", tt, err)
			}
			if got := c.String(); got != tt {
				t.Errorf("FromString(%q).String() = %q, want %q", tt, got, tt)
			}
		})
	}
}

func TestFromStringNormalizes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.50", "1.5"},
		{"01", "1"},
		{"1.0", "1"},
		{"-0", "0"},
		{"-0.0", "0"},
		{"+2.5", "2.5"},
		{"0.1000000", "0.1"}, // excess zeros beyond six digits are fine
	}

	for _, tt := range tests {
		c, err := FromString(tt.input)
		if err != nil {
			t.Fatalf("FromString(%q) error: %v", tt.input, err)
		}
		if got := c.String(); got != tt.want {
			t.Errorf("FromString(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFromStringRejects(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"1.2.3",
		"1e6",
		"--1",
		"0.1234567", // seventh significant fractional digit
		".",
	}

	for _, tt := range tests {
		if _, err := FromString(tt); err == nil {
			t.Errorf("FromString(%q) succeeded, want error", tt)
		}
	}
}

func TestFromMmToMm(t *testing.T) {
	tests := []struct {
		mm     float64
		wantNm int64
	}{
		{0, 0},
		{1, 1_000_000},
		{1.6, 1_600_000},
		{-0.25, -250_000},
		{0.000001, 1},
	}

	for _, tt := range tests {
		c := FromMm(tt.mm)
		if c.Nm() != tt.wantNm {
			t.Errorf("FromMm(%v).Nm() = %d, want %d", tt.mm, c.Nm(), tt.wantNm)
		}
		if got := c.ToMm(); got != float64(tt.wantNm)/NanometersPerMm {
			t.Errorf("FromMm(%v).ToMm() = %v", tt.mm, got)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := FromMm(1.5)
	b := FromMm(0.25)

	if got := a.Add(b); got != FromMm(1.75) {
		t.Errorf("Add = %s", got)
	}
	if got := a.Sub(b); got != FromMm(1.25) {
		t.Errorf("Sub = %s", got)
	}
	if got := a.MulScalar(2); got != FromMm(3) {
		t.Errorf("MulScalar = %s", got)
	}
	if got := a.DivScalar(2); got != FromMm(0.75) {
		t.Errorf("DivScalar = %s", got)
	}
	if got := b.Neg(); got != FromMm(-0.25) {
		t.Errorf("Neg = %s", got)
	}
	if got := FromMm(-0.25).Abs(); got != b {
		t.Errorf("Abs = %s", got)
	}
}

func TestOrdering(t *testing.T) {
	a := FromMm(-1)
	b := FromMm(2)

	if !a.Less(b) || b.Less(a) {
		t.Error("Less is wrong")
	}
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Error("Cmp is wrong")
	}
	if Min(a, b) != a || Max(a, b) != b {
		t.Error("Min/Max are wrong")
	}
}

// Repeated conversion through the integer representation must never
// drift
func TestNoDriftAcrossCycles(t *testing.T) {
	c, err := FromString("0.123456")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		next, err := FromString(c.String())
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if next != c {
			t.Fatalf("cycle %d: drifted from %s to %s", i, c, next)
		}
		c = next
	}
}
