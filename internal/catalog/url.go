package catalog

import "fmt"

// BuildURL maps a vehicle query to its canonical catalog page URL.
// Pure and deterministic: the same query always yields the same URL, which
// lets the fallback path re-report exactly the URL that was attempted.
// Segments are interpolated literally; callers own URL-safety and casing.
func BuildURL(baseURL, year, make, model string) string {
	return fmt.Sprintf("%s/parts/%s/%s/%s", baseURL, year, make, model)
}
