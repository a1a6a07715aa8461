package domain

import "testing"

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"work", "home", "travel", "dining", "hiking", "other"} {
		c, ok := ParseCategory(valid)
		if !ok {
			t.Errorf("ParseCategory(%q) should succeed", valid)
		}
		if c.String() != valid {
			t.Errorf("ParseCategory(%q) = %q", valid, c)
		}
	}
	for _, invalid := range []string{"", "Work", "vacation", "OTHER"} {
		if _, ok := ParseCategory(invalid); ok {
			t.Errorf("ParseCategory(%q) should fail", invalid)
		}
	}
}
