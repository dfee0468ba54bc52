package text

import (
	"strconv"
	"strings"
)

const (
	PageNumberToken = "{{pageNumber}}"
	TotalPagesToken = "{{totalPages}}"
)

// HasPlaceholder reports whether content contains a page-number or
// total-pages token that must be substituted once the final page count is
// known, rather than measured as literal text.
func HasPlaceholder(content string) bool {
	return strings.Contains(content, PageNumberToken) || strings.Contains(content, TotalPagesToken)
}

// SubstitutePlaceholders replaces the page-number tokens in content with
// their decimal values, once the PDF serializer knows pageNumber/totalPages
// for the page a line was emitted on.
func SubstitutePlaceholders(content string, pageNumber, totalPages int) string {
	r := strings.NewReplacer(
		PageNumberToken, strconv.Itoa(pageNumber),
		TotalPagesToken, strconv.Itoa(totalPages),
	)
	return r.Replace(content)
}
