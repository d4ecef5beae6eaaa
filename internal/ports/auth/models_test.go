package auth

import "testing"

func TestParsePrincipal(t *testing.T) {
	if p := ParsePrincipal("  "); !p.IsAnonymous() {
		t.Fatalf("expected blank to be anonymous, got %q", p)
	}
	if p := ParsePrincipal("2vxsx-fae"); !p.IsAnonymous() {
		t.Fatalf("expected anonymous principal text to be anonymous")
	}
	p := ParsePrincipal(" owner-1 ")
	if p != Principal("owner-1") || p.IsAnonymous() {
		t.Fatalf("unexpected principal %q", p)
	}
	if Principal("").String() != string(Anonymous) {
		t.Fatalf("expected empty principal to print as anonymous")
	}
}
