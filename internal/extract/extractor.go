// Package extract reads the raw booking fragments out of a rendered page.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bookingcal/internal/domain"
)

// Extract reads every fragment independently. A selector that matches
// nothing yields an empty field; nothing is validated here.
func Extract(doc *goquery.Document, pageURL string, sel Selectors) domain.RawFragments {
	return domain.RawFragments{
		StoreName:   firstText(doc.Selection, sel.Store),
		StaffName:   firstText(doc.Selection, sel.Staff),
		MenuText:    menuText(doc, sel),
		BookedText:  firstText(doc.Selection, sel.Booked),
		AddressText: addressText(doc, sel),
		SourceURL:   StripFragment(pageURL),
	}
}

// ExtractHTML parses html and extracts from it.
func ExtractHTML(html, pageURL string, sel Selectors) (domain.RawFragments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.RawFragments{}, fmt.Errorf("failed to parse page html: %w", err)
	}
	return Extract(doc, pageURL, sel), nil
}

// StripFragment drops everything from the first '#'.
func StripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func firstText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// menuText returns the description of the last detail row titled like a menu.
func menuText(doc *goquery.Document, sel Selectors) string {
	if sel.InfoItem == "" || sel.MenuLabel == "" {
		return ""
	}
	menu := ""
	doc.Find(sel.InfoItem).Each(func(_ int, item *goquery.Selection) {
		title := item.Find(sel.InfoTitle).First()
		desc := item.Find(sel.InfoDesc).First()
		if title.Length() == 0 || desc.Length() == 0 {
			return
		}
		if strings.Contains(removeSpace(title.Text()), sel.MenuLabel) {
			menu = strings.TrimSpace(desc.Text())
		}
	})
	return menu
}

func addressText(doc *goquery.Document, sel Selectors) string {
	if sel.Address == "" {
		return ""
	}
	box := doc.Find(sel.Address).First()
	if box.Length() == 0 {
		return ""
	}
	text := box.Text()
	for _, noise := range sel.AddressNoise {
		text = strings.Replace(text, noise, "", 1)
	}
	return strings.TrimSpace(text)
}

func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
