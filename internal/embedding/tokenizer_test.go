package embedding

import "testing"

func TestWordTokenizerShape(t *testing.T) {
	tok := &WordTokenizer{}
	ids, mask, types := tok.Tokenize("mesin cuci otomatis", 16)
	if len(ids) != 16 || len(mask) != 16 || len(types) != 16 {
		t.Fatalf("unexpected lengths: %d %d %d", len(ids), len(mask), len(types))
	}
	if ids[0] != clsTokenID {
		t.Errorf("ids[0] = %d, want CLS", ids[0])
	}
	// 3 words then SEP at position 4.
	if ids[4] != sepTokenID {
		t.Errorf("ids[4] = %d, want SEP", ids[4])
	}
	for i := 0; i < 5; i++ {
		if mask[i] != 1 {
			t.Errorf("mask[%d] = %d, want 1", i, mask[i])
		}
	}
	if mask[5] != 0 {
		t.Errorf("mask[5] = %d, want 0 padding", mask[5])
	}
}

func TestWordTokenizerTruncates(t *testing.T) {
	tok := &WordTokenizer{}
	ids, mask, _ := tok.Tokenize("one two three four five six seven eight", 4)
	if len(ids) != 4 {
		t.Fatalf("len(ids) = %d, want 4", len(ids))
	}
	// CLS, two words, then SEP in the last slot.
	if ids[3] != sepTokenID {
		t.Errorf("ids[3] = %d, want SEP", ids[3])
	}
	for i := 0; i < 4; i++ {
		if mask[i] != 1 {
			t.Errorf("mask[%d] = %d, want 1", i, mask[i])
		}
	}
}

func TestHashTokenStable(t *testing.T) {
	if hashToken("komputer") != hashToken("komputer") {
		t.Error("hashToken not deterministic")
	}
	if hashToken("komputer") == hashToken("computer") {
		t.Error("distinct words should hash differently")
	}
	if hashToken("some very long repeated string some very long repeated string") < 0 {
		t.Error("hashToken returned negative value")
	}
}
