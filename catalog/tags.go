package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// OfferObjects is the tag-lookup payload for one media GUID.
type OfferObjects struct {
	Offers []Offer `json:"offers"`
}

// Offer is one commercial offer with its availability annotations.
type Offer struct {
	BillingID      string         `json:"billingId"`
	Availabilities []Availability `json:"availabilities"`
}

// Availability names one commercial availability window.
type Availability struct {
	TagName string `json:"availabilityTagName"`
}

// corpTagPrefix is the naming convention for corp availability tags.
const corpTagPrefix = "Corp:"

// reservedTagPrefixes are excluded from the audit even though they
// carry the corp prefix.
var reservedTagPrefixes = []string{"Corp:8069", "Corp:8045"}

// OfferObjects fetches the offers and availability tags for a media GUID.
func (c *Client) OfferObjects(ctx context.Context, guid string) (*OfferObjects, error) {
	params := url.Values{}
	params.Add("guid", guid)

	body, err := c.get(ctx, c.tagURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offer objects for %s: %w", guid, err)
	}

	var objects OfferObjects
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, fmt.Errorf("failed to decode offer objects: %w", err)
	}
	return &objects, nil
}

// FilterTags collects, in catalog order, the availability tag names of
// the offers billed under billingID that follow the corp convention and
// carry no reserved sub-prefix.
func FilterTags(objects *OfferObjects, billingID string) []string {
	if objects == nil {
		return nil
	}

	var tags []string
	for _, offer := range objects.Offers {
		if offer.BillingID != billingID {
			continue
		}
		for _, avail := range offer.Availabilities {
			name := avail.TagName
			if !strings.HasPrefix(name, corpTagPrefix) {
				continue
			}
			if reservedTag(name) {
				continue
			}
			tags = append(tags, name)
		}
	}
	return tags
}

func reservedTag(name string) bool {
	for _, prefix := range reservedTagPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// FetchFilteredTags is the degrading form of the tag lookup: a blank
// GUID or an unreachable service yields an empty list, never an error.
// The gap then surfaces in the availability audit itself.
func (c *Client) FetchFilteredTags(ctx context.Context, guid, billingID string) []string {
	if guid == "" || billingID == "" {
		return nil
	}
	objects, err := c.OfferObjects(ctx, guid)
	if err != nil {
		log.Printf("Tag lookup for %s failed, continuing without remote tags: %v", guid, err)
		return nil
	}
	return FilterTags(objects, billingID)
}
