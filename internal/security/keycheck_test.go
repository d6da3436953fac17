package security

import "testing"

// knownGoodKey satisfies all three checksum rules:
// sum("CODE") = 283 ≡ 27 (mod 256) = 'A'^'B'^'H'^'P',
// sum("ABHP") = 283 ≡ 3 (mod 7), and "KEY7" holds exactly one digit.
const knownGoodKey = "CODE-ABHP-WALL-KEY7"

func TestValidKeyAcceptsKnownGood(t *testing.T) {
	if !ValidKey(knownGoodKey) {
		t.Errorf("expected %q to be accepted", knownGoodKey)
	}
	if !ValidKey("CODEABHPWALLKEY7") {
		t.Errorf("expected unhyphenated form to be accepted")
	}
	if !ValidKey("code-abhp-wall-key7") {
		t.Errorf("expected lowercase form to be accepted (keys are case-folded)")
	}
}

func TestValidKeyRejectsMutations(t *testing.T) {
	// Characters 0-7 feed the sum and XOR checks; any single change
	// there breaks rule 1. In the tail, rule 3 breaks when the digit
	// count changes.
	base := "CODEABHPWALLKEY7"
	for i := 0; i < 8; i++ {
		mutated := []byte(base)
		mutated[i] = 'X'
		if ValidKey(string(mutated)) {
			t.Errorf("expected mutation at position %d (%q) to be rejected", i, mutated)
		}
	}

	if ValidKey("CODEABHPWALLKEYZ") {
		t.Errorf("expected key with no digit in the tail to be rejected")
	}
	if ValidKey("CODEABHPWALL3EY7") {
		t.Errorf("expected key with two digits in the tail to be rejected")
	}
}

func TestValidKeyRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"too short", "CODE-ABHP-WALL"},
		{"too long", "CODE-ABHP-WALL-KEY7X"},
		{"space", "CODE ABHP WALL KEY7"},
		{"punctuation", "CODE_ABHP-WALL-KEY7"},
		{"unicode", "CØDE-ABHP-WALL-KEY7"},
		{"only hyphens", "----------------"},
		{"two digits in tail", "CODE-ABHP-WALL-K3Y7"},
		{"no digit in tail", "CODE-ABHP-WALL-KEYZ"},
	}
	for _, tc := range cases {
		if ValidKey(tc.key) {
			t.Errorf("%s: expected %q to be rejected", tc.name, tc.key)
		}
	}
}
