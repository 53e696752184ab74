package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{name: "defaults", in: Params{}, want: Params{Page: 1, Limit: DefaultLimit}},
		{name: "negative page", in: Params{Page: -3, Limit: 5}, want: Params{Page: 1, Limit: 5}},
		{name: "over max", in: Params{Page: 2, Limit: 500}, want: Params{Page: 2, Limit: MaxLimit}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Fatalf("expected %+v got %+v", tc.want, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20 got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 10); got != 0 {
		t.Fatalf("expected 0 pages got %d", got)
	}
	if got := TotalPages(10, 10); got != 1 {
		t.Fatalf("expected 1 page got %d", got)
	}
	if got := TotalPages(11, 10); got != 2 {
		t.Fatalf("expected 2 pages got %d", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, 5, 50); got != 5 {
		t.Fatalf("expected default 5 got %d", got)
	}
	if got := Clamp(80, 5, 50); got != 50 {
		t.Fatalf("expected max 50 got %d", got)
	}
	if got := Clamp(7, 5, 50); got != 7 {
		t.Fatalf("expected 7 got %d", got)
	}
}
