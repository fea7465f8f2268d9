package simplecache

import "testing"

func TestKeyJoinsTagAndIdentifiers(t *testing.T) {
	cases := []struct {
		op   string
		ids  []string
		want string
	}{
		{"pathcopies", []string{"aaa", "bbb"}, "pathcopies:aaa:bbb"},
		{"buildstatus", []string{"deadbeef"}, "buildstatus:deadbeef"},
		{"op", nil, "op"},
	}
	for _, tc := range cases {
		if got := Key(tc.op, tc.ids...); got != tc.want {
			t.Fatalf("Key(%q, %v) = %q, want %q", tc.op, tc.ids, got, tc.want)
		}
	}
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("pathcopies", "x", "y")
	b := Key("pathcopies", "x", "y")
	if a != b {
		t.Fatalf("identical inputs produced different keys: %q vs %q", a, b)
	}
}

func TestValidateKey(t *testing.T) {
	if err := validateKey("pathcopies:aaa:bbb"); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	for _, bad := range []string{"", "a b", "a\tb", "a\x00b", "a\x7fb"} {
		if err := validateKey(bad); err == nil {
			t.Fatalf("key %q should be rejected", bad)
		}
	}
}
