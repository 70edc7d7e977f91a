package x12

import "testing"

func TestTransactionSetName(t *testing.T) {
	cases := map[string]string{
		"850": "Purchase Order",
		"100": "Insurance Plan Description",
		"999": "Implementation Acknowledgment",
		"810": "Invoice",
		"000": UnidentifiedTransactionSet,
		"":    UnidentifiedTransactionSet,
	}
	for code, want := range cases {
		if got := TransactionSetName(code); got != want {
			t.Fatalf("TransactionSetName(%q) = %q, want %q", code, got, want)
		}
	}
}
