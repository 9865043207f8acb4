package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// sheetFetchTimeout bounds one published-sheet download.
const sheetFetchTimeout = 20 * time.Second

// FetchSheet downloads the raw text of a published configuration sheet.
// The estimation core never calls this itself; the handler layer fetches
// and hands the text to the parsers.
func FetchSheet(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sheetFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build sheet request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("read sheet body: %w", err)
	}
	return string(body), nil
}
