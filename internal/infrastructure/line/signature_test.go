package line

import "testing"

func TestSignatureDeterministic(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	first := Signature("secret-a", body)
	second := Signature("secret-a", body)
	if first != second {
		t.Errorf("same secret and body produced different signatures: %q vs %q", first, second)
	}
}

func TestValidateSignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[{"type":"message"}]}`)
	sig := Signature("secret-a", body)

	if !ValidateSignature("secret-a", body, sig) {
		t.Error("valid signature rejected")
	}
	if ValidateSignature("secret-b", body, sig) {
		t.Error("signature accepted under the wrong secret")
	}

	// Mutating any byte of the body must invalidate the match.
	mutated := append([]byte(nil), body...)
	mutated[len(mutated)/2] ^= 0x01
	if ValidateSignature("secret-a", mutated, sig) {
		t.Error("signature accepted for a mutated body")
	}
}

func TestValidateSignatureEmptyInputs(t *testing.T) {
	t.Parallel()

	body := []byte(`{}`)
	if ValidateSignature("", body, Signature("", body)) {
		t.Error("empty secret must never validate")
	}
	if ValidateSignature("secret", body, "") {
		t.Error("empty signature must never validate")
	}
}
