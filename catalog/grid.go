package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing is one grid anchor matched for a tier.
type Listing struct {
	ListingID string
	ProgramID string
	StationID string
	ChannelID string
}

// GridQuery scopes a grid listing request.
type GridQuery struct {
	AccountID         string
	StartDate         string // minute-precision UTC stamp, e.g. 2026-06-15T23:00Z
	ClientProfile     string
	SupportedCatalogs string
	FreeToMe          string
}

// FetchGrid retrieves the grid listing page for the given scope. An
// unreachable grid is reported to the caller, who treats it as
// remote-absence rather than a fatal condition.
func (c *Client) FetchGrid(ctx context.Context, q GridQuery) (*goquery.Document, error) {
	params := url.Values{}
	params.Add("accountId", q.AccountID)
	params.Add("startDate", q.StartDate)
	params.Add("clientProfile", q.ClientProfile)
	params.Add("supportedCatalogs", q.SupportedCatalogs)
	params.Add("freeToMe", q.FreeToMe)

	body, err := c.get(ctx, c.gridURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grid: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid HTML: %w", err)
	}
	return doc, nil
}

// ParseListings collects the anchors of one grid zone whose text
// contains any whitespace-delimited token of the event name,
// case-insensitive.
func ParseListings(doc *goquery.Document, gridZone, eventName string) []Listing {
	if doc == nil {
		return nil
	}

	tokens := strings.Fields(strings.ToLower(eventName))

	var listings []Listing
	selector := fmt.Sprintf("a[data-grid-under=%q]", gridZone)
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if !containsAny(text, tokens) {
			return
		}
		listings = append(listings, Listing{
			ListingID: sel.AttrOr("data-listingid", ""),
			ProgramID: sel.AttrOr("data-merlinid", ""),
			StationID: sel.AttrOr("data-stationid", ""),
			ChannelID: sel.AttrOr("data-channelid", ""),
		})
	})
	return listings
}

func containsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}
