package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// offerEntries mirrors the offer data service response, down to the one
// field the lookup needs.
type offerEntries struct {
	Entries []struct {
		OfferMediaAssociations []struct {
			SettlementReference string `json:"settlementReference"`
			MediaID             struct {
				MediaGuid string `json:"mediaGuid"`
			} `json:"mediaId"`
		} `json:"offerMediaAssociations"`
	} `json:"entries"`
}

// offerDataSchema pins the offer data service payload version.
const offerDataSchema = "2.34.0"

// MediaGUID resolves the media GUID for a listing by scanning its
// offer-media associations for the one whose settlement reference
// equals the tier's billing id. An empty GUID with a nil error means
// the service answered but carried no matching association.
func (c *Client) MediaGUID(ctx context.Context, listingID, settlementReference string) (string, error) {
	params := url.Values{}
	params.Add("schema", offerDataSchema)
	params.Add("form", "cjson")
	params.Add("pretty", "true")
	params.Add("byOfferEntityAssociations.entityId", listingID)

	body, err := c.get(ctx, c.offerURL+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to fetch offer data for listing %s: %w", listingID, err)
	}

	var data offerEntries
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to decode offer data: %w", err)
	}

	for _, entry := range data.Entries {
		for _, assoc := range entry.OfferMediaAssociations {
			if assoc.SettlementReference == settlementReference && assoc.MediaID.MediaGuid != "" {
				return assoc.MediaID.MediaGuid, nil
			}
		}
	}
	return "", nil
}
