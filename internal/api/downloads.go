package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tealinux/teasite/pkg/models"
)

// MaxHistoryDays bounds the download history window.
const MaxHistoryDays = 365

// TrackDownload records an ISO download. Anonymous clients are accepted.
func (c *Client) TrackDownload(ctx context.Context, edition models.Edition) (models.TrackedDownload, error) {
	var tracked models.TrackedDownload
	in := map[string]string{"edition": string(edition)}
	if err := c.do(ctx, http.MethodPost, "/api/downloads/track", in, &tracked); err != nil {
		return models.TrackedDownload{}, fmt.Errorf("failed to track download: %w", err)
	}
	if tracked.ID == 0 {
		return models.TrackedDownload{}, malformed("download id")
	}
	return tracked, nil
}

// DownloadStats returns aggregate download counts. Admin only.
func (c *Client) DownloadStats(ctx context.Context) (models.DownloadStats, error) {
	var stats models.DownloadStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/downloads/stats", nil, &stats); err != nil {
		return models.DownloadStats{}, fmt.Errorf("failed to get download stats: %w", err)
	}
	if stats.DownloadsByEdition == nil {
		return models.DownloadStats{}, malformed("downloads_by_edition")
	}
	return stats, nil
}

// DownloadHistory returns daily download counts for the last days days,
// clamped to 1..MaxHistoryDays. Admin only.
func (c *Client) DownloadHistory(ctx context.Context, days int) ([]models.DailyDownload, error) {
	days = ClampDays(days)
	var history []models.DailyDownload
	endpoint := "/api/admin/downloads/history?days=" + strconv.Itoa(days)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &history); err != nil {
		return nil, fmt.Errorf("failed to get download history: %w", err)
	}
	for _, d := range history {
		if d.Date == "" {
			return nil, malformed("date")
		}
	}
	return history, nil
}

// ClampDays bounds a history window to 1..MaxHistoryDays.
func ClampDays(days int) int {
	switch {
	case days < 1:
		return 1
	case days > MaxHistoryDays:
		return MaxHistoryDays
	default:
		return days
	}
}
