package utils

import "testing"

func TestHash3_Deterministic(t *testing.T) {
	a := Hash3(42, -1, 2, -3)
	b := Hash3(42, -1, 2, -3)
	if a != b {
		t.Fatalf("Hash3 is not pure: %d != %d", a, b)
	}
	if Hash3(42, -1, 2, -3) == Hash3(42, 1, 2, -3) {
		t.Error("sign of x must change the hash")
	}
	if Hash3(42, 0, 0, 0) == Hash3(43, 0, 0, 0) {
		t.Error("seed must change the hash")
	}
}

func TestStringToSeed(t *testing.T) {
	if StringToSeed("world") != StringToSeed("world") {
		t.Error("StringToSeed must be stable")
	}
	if StringToSeed("a") == StringToSeed("b") {
		t.Error("different names should give different seeds")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if len(id) != 16 {
		t.Errorf("Expected 16 hex chars, got %q", id)
	}
	if id == GenerateID() {
		t.Error("IDs should differ")
	}
}
