package describe

import (
	"fmt"
	"strings"

	"github.com/user/partscribe/internal/domain"
)

// Both prompt branches require the same enumerated sections so the
// generated copy keeps one shape whether or not page data was available.
const requiredSections = `Structure the description with these sections:
1. Key features of the product line
2. Compatibility with this vehicle
3. Advantages over stock or generic alternatives
4. Installation guidance`

func vehicleLine(q domain.Query) string {
	return fmt.Sprintf("%s %s %s", q.Year, q.Make, q.Model)
}

// buildGroundedPrompt asks for a description grounded in the scraped page:
// its title and descriptive text plus the serialized product list.
func buildGroundedPrompt(q domain.Query, products []domain.ProductRecord, meta domain.PageMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a product line description for aftermarket parts fitting a %s.\n\n", vehicleLine(q))
	b.WriteString(requiredSections)
	b.WriteString("\n\nUse the following catalog page data as supporting context:\n")
	if meta.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", meta.Title)
	}
	if meta.Description != "" {
		fmt.Fprintf(&b, "Page description: %s\n", meta.Description)
	}
	if len(products) > 0 {
		b.WriteString("Products found on the page:\n")
		for _, p := range products {
			fmt.Fprintf(&b, "- %s", p.Title)
			if p.Price != "" {
				fmt.Fprintf(&b, " (%s)", p.Price)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No individual product listings were found on the page.\n")
	}
	return b.String()
}

// buildGenericPrompt keeps the identical section structure but carries only
// the vehicle identifiers, with an explicit note that no product-specific
// data was available.
func buildGenericPrompt(q domain.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a product line description for aftermarket parts fitting a %s.\n\n", vehicleLine(q))
	b.WriteString(requiredSections)
	b.WriteString("\n\nNote: no product-specific data was available for this vehicle. ")
	b.WriteString("Write generic but plausible content appropriate for this class of vehicle.\n")
	return b.String()
}
