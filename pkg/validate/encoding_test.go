package validate

import (
	"reflect"
	"testing"
)

func TestCheckEncodingCleanText(t *testing.T) {
	for _, in := range []string{
		"<p>plain ascii</p>",
		"<p>naïve café</p>",
		"",
	} {
		if got := CheckEncoding(in); len(got) != 0 {
			t.Errorf("CheckEncoding(%q) = %v, want none", in, got)
		}
	}
}

func TestCheckEncodingMojibake(t *testing.T) {
	// CafÃ© matches the specific Ã© pair and then
	// the bare Ã lead byte, in table order.
	got := CheckEncoding("<p>CafÃ©</p>")
	want := []string{"Ã©", "Ã"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CheckEncoding = %q, want %q", got, want)
	}
}

func TestCheckEncodingIdentityRowsSkipped(t *testing.T) {
	// © is an identity row; undamaged symbols must not be flagged.
	if got := CheckEncoding("<p>© 2014</p>"); len(got) != 0 {
		t.Errorf("CheckEncoding flagged undamaged text: %q", got)
	}
}

func TestCheckEncodingWhitespaceRows(t *testing.T) {
	got := CheckEncoding("<p>a\tb</p>")
	if !reflect.DeepEqual(got, []string{"\t"}) {
		t.Errorf("CheckEncoding = %q, want the literal tab", got)
	}
	got = CheckEncoding("<p>a b</p>")
	if !reflect.DeepEqual(got, []string{" "}) {
		t.Errorf("CheckEncoding = %q, want the non-breaking space", got)
	}
}
