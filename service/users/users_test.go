package users

import "testing"

func TestClientCode(t *testing.T) {
	cases := []struct {
		existing int64
		want     string
	}{
		{0, "MX200"},
		{1, "MX201"},
		{2, "MX202"},
		{100, "MX300"},
		{801, "MX1001"},
	}
	for _, tc := range cases {
		if got := ClientCode(tc.existing); got != tc.want {
			t.Errorf("ClientCode(%d) = %q, want %q", tc.existing, got, tc.want)
		}
	}
}
