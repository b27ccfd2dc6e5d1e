package types

import "testing"

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "10.00", want: 1000},
		{in: "10.5", want: 1050},
		{in: "0", want: 0},
		{in: " 3.99 ", want: 399},
		{in: "1234", want: 123400},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-1.00", wantErr: true},
		{in: "0.001", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCents(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCents(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(1050); got != "10.50" {
		t.Fatalf("FormatCents(1050) = %q", got)
	}
	if got := FormatCents(0); got != "0.00" {
		t.Fatalf("FormatCents(0) = %q", got)
	}
	if got := FormatCents(5); got != "0.05" {
		t.Fatalf("FormatCents(5) = %q", got)
	}
}
