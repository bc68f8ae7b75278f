package naming

import "testing"

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"age":            "Age",
		"dynamic_column": "Dynamic Column",
		"ge_le":          "Ge Le",
		"createdAt":      "Created At",
		"HTTPPort":       "Httpport",
		"":               "",
		"a":              "A",
	}
	for input, want := range cases {
		if got := Title(input); got != want {
			t.Errorf("Title(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFold(t *testing.T) {
	if Fold("created_at") != Fold("CreatedAt") {
		t.Fatalf("expected folded names to match")
	}
	if Fold("Created At") != "createdat" {
		t.Fatalf("unexpected fold: %q", Fold("Created At"))
	}
}
