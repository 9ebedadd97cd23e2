// ==============================================================================================
// FILE: token/token_sanity_test.go
// ==============================================================================================
// PURPOSE: Smoke-checks that the package is importable and its constants are non-empty strings.
// ==============================================================================================

package token

import "testing"

func TestTypeStringsNonEmpty(t *testing.T) {
	if EOF == "" || ID == "" || KEYWORD == "" {
		t.Fatal("Type constants must not be the empty string")
	}
}
