package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/user/partscribe/internal/domain"
)

// selectorTier describes one alternative structural pattern for locating
// product elements. Tiers are tried in order; the first one with at least
// one container match wins. Adding a tier is a data change, not new
// control flow.
type selectorTier struct {
	container string
	title     string
	price     string
	image     string
}

var productTiers = []selectorTier{
	{
		container: "div.product-card",
		title:     ".product-title",
		price:     ".product-price",
		image:     "img.product-image",
	},
	{
		container: "li.product-item",
		title:     "h3",
		price:     ".price",
		image:     "img",
	},
}

// ExtractProducts pulls product listings from a rendered catalog page.
// Zero matches across all tiers yields an empty slice: an empty catalog
// page is a valid outcome, not an extraction failure. Records keep
// document order, and each sub-field independently defaults to "" when
// its sub-selector does not match (partial records are valid).
func ExtractProducts(doc *goquery.Document) []domain.ProductRecord {
	for _, tier := range productTiers {
		sel := doc.Find(tier.container)
		if sel.Length() == 0 {
			continue
		}
		products := make([]domain.ProductRecord, 0, sel.Length())
		sel.Each(func(i int, s *goquery.Selection) {
			// Image URL comes from src only; lazy-load attributes are
			// not inferred.
			src, _ := s.Find(tier.image).First().Attr("src")
			products = append(products, domain.ProductRecord{
				Title:    trimmedText(s.Find(tier.title)),
				Price:    trimmedText(s.Find(tier.price)),
				ImageURL: src,
			})
		})
		return products
	}
	return []domain.ProductRecord{}
}
