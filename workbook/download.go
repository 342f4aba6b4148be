package workbook

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DownloadLatestExport scans the export archive listing page for CSV
// links, downloads the newest one into dir and returns its path. No CSV
// link on the page is a shape error: there is nothing to validate.
func DownloadLatestExport(ctx context.Context, client *http.Client, listingURL, dir string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build listing request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch export listing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from export listing", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse export listing: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if strings.HasSuffix(href, ".csv") {
			links = append(links, href)
		}
	})
	if len(links) == 0 {
		return "", fmt.Errorf("no CSV files found at %s", listingURL)
	}

	base, err := url.Parse(listingURL)
	if err != nil {
		return "", fmt.Errorf("invalid listing URL: %w", err)
	}
	ref, err := url.Parse(links[len(links)-1])
	if err != nil {
		return "", fmt.Errorf("invalid CSV link %q: %w", links[len(links)-1], err)
	}
	csvURL := base.ResolveReference(ref).String()

	target := filepath.Join(dir, path.Base(ref.Path))
	if err := downloadFile(ctx, client, csvURL, target); err != nil {
		return "", err
	}

	log.Printf("Downloaded the latest export file %s to %s", path.Base(ref.Path), target)
	return target, nil
}

func downloadFile(ctx context.Context, client *http.Client, fileURL, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", fileURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, fileURL)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
