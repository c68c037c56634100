package payrun

import "testing"

func TestParseAmount_RoundsToFourDigits(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"10.00", "10"},
		{"5.123456789", "5.1235"},
		{"0.00005", "0.0001"},
		{"0.00004", "0"},
		{"-3.14159", "-3.1416"},
		{"42", "42"},
	}
	for _, tc := range testCases {
		a, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tc.in, err)
			continue
		}
		if got := a.String(); got != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "ten", "1.2.3"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) succeeded, want error", in)
		}
	}
}

func TestAmount_RepeatedAdditionStaysExact(t *testing.T) {
	// 0.1 cannot be represented in binary floating point; ten thousand
	// additions must still sum to exactly 1000.
	var sum Amount
	step := amt(t, "0.1")
	for range 10000 {
		sum = sum.Add(step)
	}
	if want := amt(t, "1000"); !sum.Equal(want) {
		t.Fatalf("sum = %s, want %s", sum, want)
	}
}

func TestAmount_Comparisons(t *testing.T) {
	small, big := amt(t, "1.5"), amt(t, "2")
	if !small.LessThan(big) {
		t.Errorf("%s should be less than %s", small, big)
	}
	if big.LessThan(small) {
		t.Errorf("%s should not be less than %s", big, small)
	}
	if !big.GreaterThanOrEqual(big) {
		t.Errorf("%s should be >= itself", big)
	}
	if !small.Neg().IsNegative() {
		t.Errorf("negated amount should be negative")
	}
	if !small.Sub(small).IsZero() {
		t.Errorf("a - a should be zero")
	}
}
