package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateReference(t *testing.T) {
	now := time.Unix(1700000000, 0)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		ref, err := GenerateReference(now)
		if err != nil {
			t.Fatalf("GenerateReference() error = %v", err)
		}
		if !strings.HasPrefix(ref, "PAY-1700000000") {
			t.Errorf("unexpected prefix: %s", ref)
		}
		// PAY- + 10 цифр времени + 6 случайных + контрольная
		if len(ref) != 4+10+6+1 {
			t.Errorf("unexpected length %d: %s", len(ref), ref)
		}
		if !ValidReference(ref) {
			t.Errorf("generated reference does not validate: %s", ref)
		}
		seen[ref] = struct{}{}
	}

	if len(seen) < 2 {
		t.Error("references are not random")
	}
}

func TestValidReference(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"PAY-79927398713", true},
		{"PAY-79927398714", false},
		{"79927398713", false},
		{"PAY-", false},
		{"PAY-123", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := ValidReference(tt.ref); got != tt.want {
				t.Errorf("ValidReference(%s) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}
