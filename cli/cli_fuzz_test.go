package cli

import (
	"strings"
	"testing"
)

func FuzzSplitList(f *testing.F) {
	f.Add("Fe,Co,Ni")
	f.Add("")
	f.Add(",,,")
	f.Add(" Fe , Co ")
	f.Add("Fe\x00,Co")

	f.Fuzz(func(t *testing.T, s string) {
		for _, part := range splitList([]string{s}) {
			if part == "" || strings.Contains(part, ",") {
				t.Errorf("splitList(%q) produced %q", s, part)
			}
			if strings.TrimSpace(part) != part {
				t.Errorf("splitList(%q) kept surrounding space in %q", s, part)
			}
		}
	})
}

func FuzzFormatNumber(f *testing.F) {
	f.Add(0)
	f.Add(999)
	f.Add(1000)
	f.Add(1234567)

	f.Fuzz(func(t *testing.T, n int) {
		if n < 0 {
			return
		}
		got := strings.ReplaceAll(formatNumber(n), ",", "")
		if got != strings.TrimLeft(got, "0") && got != "0" {
			t.Errorf("formatNumber(%d) = %q has leading zeros", n, got)
		}
	})
}
