package auth

import "testing"

func TestRemoteID(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"u42", 42},
		{"u7", 7},
		{"warehouse", 0},
		{"", 0},
		{"u", 0},
		{"uabc", 0},
		{"42", 0},
	}
	for _, tc := range cases {
		if got := RemoteID(tc.in); got != tc.want {
			t.Errorf("RemoteID(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRemoteIDRoundTrip(t *testing.T) {
	if got := RemoteID(gatewayUserID(42)); got != 42 {
		t.Fatalf("expected round trip to 42, got %d", got)
	}
}
