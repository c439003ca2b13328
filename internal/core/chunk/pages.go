package chunk

import (
	"slices"
	"strconv"
	"strings"
)

// PageLabel collapses the pages contributing to a chunk into a citation
// label: "" for no pages, "5" for one page, "3-5" for a fully contiguous
// run. Any gap means every page is listed individually ("1,2,5"); runs
// around a gap are not compressed.
func PageLabel(pages []int) string {
	if len(pages) == 0 {
		return ""
	}

	uniq := slices.Clone(pages)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	if len(uniq) == 1 {
		return strconv.Itoa(uniq[0])
	}

	contiguous := true
	for i := 0; i < len(uniq)-1; i++ {
		if uniq[i]+1 != uniq[i+1] {
			contiguous = false
			break
		}
	}
	if contiguous {
		return strconv.Itoa(uniq[0]) + "-" + strconv.Itoa(uniq[len(uniq)-1])
	}

	parts := make([]string, len(uniq))
	for i, p := range uniq {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
