package relation

import (
	"testing"
	"time"
)

func TestToFloat(t *testing.T) {
	cases := []struct {
		in      interface{}
		want    float64
		wantErr bool
	}{
		{float64(1.5), 1.5, false},
		{int(3), 3, false},
		{"42", 42, false},
		{" 42 ", 42, false},
		{"3,5", 3.5, false},
		{"", 0, true},
		{nil, 0, true},
		{"abc", 0, true},
	}

	for _, tc := range cases {
		got, err := ToFloat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ToFloat(%v): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ToFloat(%v): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ToFloat(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestToIntTruncatesFraction(t *testing.T) {
	got, err := ToInt("2.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("ToInt(2.9) = %d, want 2", got)
	}

	got, err = ToInt(float64(-1.7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -1 {
		t.Fatalf("ToInt(-1.7) = %d, want -1 (truncation, not floor)", got)
	}
}

func TestToTimeFormats(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-15":          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"15/03/2024":          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"2024-03-15 10:30:00": time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	for in, want := range cases {
		got, err := ToTime(in)
		if err != nil {
			t.Fatalf("ToTime(%q): unexpected error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ToTime(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ToTime("not a date"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestToTimeSerialDate(t *testing.T) {
	// Serial 45366 is 2024-03-15 in the 1900 date system
	got, err := ToTime(float64(45366))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToTime(45366) = %v, want %v", got, want)
	}
}

func TestKeyString(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"", ""},
		{float64(1), "1"},
		{"1", "1"},
		{"1.0", "1"},
		{int64(42), "42"},
		{"A123", "A123"},
		{" A123 ", "A123"},
	}

	for _, tc := range cases {
		if got := KeyString(tc.in); got != tc.want {
			t.Fatalf("KeyString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric(float64(1)) || !IsNumeric(int64(1)) {
		t.Fatal("numeric Go types must be numeric")
	}
	if IsNumeric("123") {
		t.Fatal("string cells are never numeric, whatever their content")
	}
	if IsNumeric(nil) {
		t.Fatal("nil is not numeric")
	}
}
