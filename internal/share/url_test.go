package share

import "testing"

func TestParseShareParam(t *testing.T) {
	cases := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"query form", "https://app.test/?share=abc123", "abc123", true},
		{"fragment form", "https://app.test/#share=abc123", "abc123", true},
		{"query wins", "https://app.test/?share=fromquery#share=fromfrag", "fromquery", true},
		{"escaped fragment", "https://app.test/#share=a%2Db", "a-b", true},
		{"no param", "https://app.test/", "", false},
		{"other params", "https://app.test/?theme=dark", "", false},
		{"empty value", "https://app.test/?share=", "", false},
		{"empty fragment value", "https://app.test/#share=", "", false},
		{"unrelated fragment", "https://app.test/#section-2", "", false},
		{"not a url", "://broken", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseShareParam(tc.url)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("%s: ParseShareParam(%q) = (%q, %v), want (%q, %v)",
				tc.name, tc.url, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFingerprintDistinguishesFullPayload(t *testing.T) {
	// Payloads sharing a long prefix must not collide: the fingerprint
	// hashes the whole string, not a prefix of it.
	a := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA-one"
	b := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA-two"
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatalf("prefix-sharing payloads collided")
	}
	if Fingerprint(a) != Fingerprint(a) {
		t.Fatalf("fingerprint not deterministic")
	}
}
