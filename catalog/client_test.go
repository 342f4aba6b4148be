package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(gridURL, offerURL, tagURL string) *Client {
	return NewClient(ClientConfig{
		GridURL:   gridURL,
		OfferURL:  offerURL,
		TagURL:    tagURL,
		RateLimit: 1000, // keep tests fast
	})
}

func TestMediaGUIDPicksSettlementReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "L1", r.URL.Query().Get("byOfferEntityAssociations.entityId"))
		require.Equal(t, offerDataSchema, r.URL.Query().Get("schema"))
		w.Write([]byte(`{
			"entries": [
				{"offerMediaAssociations": [
					{"settlementReference": "OTHER", "mediaId": {"mediaGuid": "wrong-guid"}},
					{"settlementReference": "EVT100", "mediaId": {"mediaGuid": "right-guid"}}
				]}
			]
		}`))
	}))
	defer server.Close()

	c := testClient("", server.URL, "")

	guid, err := c.MediaGUID(context.Background(), "L1", "EVT100")
	require.NoError(t, err)
	require.Equal(t, "right-guid", guid)
}

func TestMediaGUIDNoAssociation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entries": []}`))
	}))
	defer server.Close()

	c := testClient("", server.URL, "")

	guid, err := c.MediaGUID(context.Background(), "L1", "EVT100")
	require.NoError(t, err)
	require.Empty(t, guid)
}

func TestFetchFilteredTagsDegradesToEmpty(t *testing.T) {
	c := testClient("", "", "http://127.0.0.1:0") // unreachable

	// A blank GUID never hits the network.
	require.Nil(t, c.FetchFilteredTags(context.Background(), "", "EVT100"))

	// An unreachable service degrades to nothing observed.
	require.Nil(t, c.FetchFilteredTags(context.Background(), "guid-1", "EVT100"))
}

func TestFetchFilteredTagsEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "guid-1", r.URL.Query().Get("guid"))
		w.Write([]byte(`{
			"offers": [
				{"billingId": "EVT100", "availabilities": [
					{"availabilityTagName": "Corp:9001"},
					{"availabilityTagName": "Corp:8069X"}
				]}
			]
		}`))
	}))
	defer server.Close()

	c := testClient("", "", server.URL)

	tags := c.FetchFilteredTags(context.Background(), "guid-1", "EVT100")
	require.Equal(t, []string{"Corp:9001"}, tags)
}

func TestGetRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(server.URL, server.URL, server.URL)

	_, err := c.OfferObjects(context.Background(), "guid-1")
	require.Error(t, err)
}
