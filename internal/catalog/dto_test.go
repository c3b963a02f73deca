package catalog

import (
	"encoding/json"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{`1500`, 1500, true},
		{`99.9`, 99.9, true},
		{`"1200.50"`, 1200.5, true},
		{`" 10 "`, 10, true},
		{`null`, 0, true},
		{``, 0, true},
		{`"abc"`, 0, false},
		{`true`, 0, false},
		{`"NaN"`, 0, false},
		{`"Infinity"`, 0, false},
		{`"-inf"`, 0, false},
		{`"1e400"`, 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(json.RawMessage(tt.raw))
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("parsePrice(%s): want (%v,%v), got (%v,%v)", tt.raw, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestIDString(t *testing.T) {
	tests := map[string]string{
		`3`:     "3",
		`"12"`:  "12",
		`0`:     "",
		`null`:  "",
		``:      "",
		`""`:    "",
		`false`: "",
		`3.0`:   "3",
		`1e2`:   "100",
		`"3.0"`: "3.0",
	}

	for raw, want := range tests {
		if got := idString(json.RawMessage(raw)); got != want {
			t.Fatalf("idString(%s): want %q, got %q", raw, want, got)
		}
	}
}
