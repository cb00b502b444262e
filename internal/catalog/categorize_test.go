package catalog

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"Telephone sets, including smartphones", "electronics"},
		{"Woven fabrics of cotton", "textiles"},
		{"Centrifugal pumps for liquids", "machinery"},
		{"Sulphuric acid; oleum", "chemicals"},
		{"Coffee, whether or not roasted", "food"},
		{"Railway passenger coaches", "transport"},
		{"Live bovine animals", "animals"},
		{"Fresh cut flowers and flower buds", "plants"},
		{"Bars and rods of iron or non-alloy steel", "metals"},
		{"Petroleum oils, crude", "energy"},
		{"Works of art, collectors' pieces", "others"},
		{"", "others"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.desc); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName("electronics"); got != "Elektronik" {
		t.Errorf("CategoryName(electronics) = %q", got)
	}
	if got := CategoryName("nope"); got != "nope" {
		t.Errorf("CategoryName(nope) = %q, want passthrough", got)
	}
}

func TestCategoryKeysStable(t *testing.T) {
	a := CategoryKeys()
	b := CategoryKeys()
	if len(a) == 0 {
		t.Fatal("no category keys")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("CategoryKeys order not stable: %v vs %v", a, b)
		}
	}
	if a[len(a)-1] != "others" {
		t.Errorf("expected others last, got %q", a[len(a)-1])
	}
}
