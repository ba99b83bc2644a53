package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("s3cret", hash) {
		t.Fatal("expected matching credential to verify")
	}
	if Verify("wrong", hash) {
		t.Fatal("expected mismatched credential to fail")
	}
}
