package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/partscribe/internal/domain"
)

// ExtractMetadata pulls auxiliary page fields from a rendered catalog page.
// The four lookups are independent: each defaults to empty on no match,
// and HTMLLength is always computed from the full serialized markup.
func ExtractMetadata(doc *goquery.Document, html string) domain.PageMetadata {
	meta := domain.PageMetadata{
		Title:      trimmedText(doc.Find("title").First()),
		HTMLLength: len(html),
	}

	var crumbs []string
	doc.Find(".breadcrumbs li, nav.breadcrumb li").Each(func(i int, s *goquery.Selection) {
		if txt := strings.TrimSpace(s.Text()); txt != "" {
			crumbs = append(crumbs, txt)
		}
	})
	meta.Breadcrumbs = strings.Join(crumbs, " > ")

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = strings.TrimSpace(content)
	}
	if meta.Description == "" {
		meta.Description = trimmedText(doc.Find(".category-description").First())
	}

	return meta
}

func trimmedText(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}
