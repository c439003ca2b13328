package chunk

import "testing"

func TestPageLabel(t *testing.T) {
	cases := []struct {
		name  string
		pages []int
		want  string
	}{
		{"empty", nil, ""},
		{"single", []int{5}, "5"},
		{"contiguous", []int{3, 4, 5}, "3-5"},
		{"gap", []int{1, 2, 5}, "1,2,5"},
		{"two runs with gap are not compressed", []int{1, 2, 3, 7, 8, 9}, "1,2,3,7,8,9"},
		{"duplicates collapse", []int{5, 5, 5}, "5"},
		{"unsorted input", []int{5, 3, 4}, "3-5"},
		{"pair", []int{2, 3}, "2-3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PageLabel(tc.pages); got != tc.want {
				t.Fatalf("PageLabel(%v) = %q, want %q", tc.pages, got, tc.want)
			}
		})
	}
}
