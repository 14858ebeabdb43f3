package models

import (
	"strings"
	"time"
)

// Edition is a downloadable distribution edition.
type Edition string

const (
	EditionCosmic Edition = "COSMIC"
	EditionPlasma Edition = "PLASMA"
)

// ParseEdition accepts an edition name in any case.
func ParseEdition(s string) (Edition, bool) {
	switch e := Edition(strings.ToUpper(strings.TrimSpace(s))); e {
	case EditionCosmic, EditionPlasma:
		return e, true
	default:
		return "", false
	}
}

// Download is one tracked ISO download.
type Download struct {
	ID        uint      `json:"id"`
	Edition   string    `json:"edition"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	UserID    *uint     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackedDownload is returned after a download has been recorded.
type TrackedDownload struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// DownloadStats summarises download counts.
type DownloadStats struct {
	TotalDownloads     int64            `json:"total_downloads"`
	DownloadsByEdition map[string]int64 `json:"downloads_by_edition"`
	DownloadsToday     int64            `json:"downloads_today"`
	DownloadsThisWeek  int64            `json:"downloads_this_week"`
	DownloadsThisMonth int64            `json:"downloads_this_month"`
	RecentDownloads    []Download       `json:"recent_downloads"`
}

// DailyDownload is one bucket of the download history.
type DailyDownload struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
