package level

import (
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`)

func TestGenerateID_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if !idPattern.MatchString(id) {
			t.Fatalf("GenerateID() = %q, want XXXX-XXXX-XXXX-XXXX uppercase hex", id)
		}
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("GenerateID() repeated %q", id)
		}
		seen[id] = true
	}
}
