package domain

import "time"

// DownloadRecord is one ledger entry for a fallback download attempt
type DownloadRecord struct {
	ID                string `json:"id"`                  // unique within the ledger
	MarketplaceURL    string `json:"marketplace_url"`     // human-facing page
	DirectDownloadURL string `json:"direct_download_url"` // synthesized asset URL
	DownloadPath      string `json:"download_path"`
	FileName          string `json:"file_name"`
	Version           string `json:"version,omitempty"` // empty means "latest"
	Timestamp         string `json:"timestamp"`         // RFC3339
	Success           bool   `json:"success"`
}

// NewDownloadRecord builds the initial ledger entry for an attempt.
// Success starts false; the ledger flips it once the fetch outcome is
// known.
func NewDownloadRecord(id string, asset FallbackAsset, downloadPath, version string) DownloadRecord {
	return DownloadRecord{
		ID:                id,
		MarketplaceURL:    asset.MarketplaceURL,
		DirectDownloadURL: asset.DirectDownloadURL,
		DownloadPath:      downloadPath,
		FileName:          asset.FileName,
		Version:           version,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		Success:           false,
	}
}

// Time parses the record timestamp, zero time when unparsable
func (r *DownloadRecord) Time() time.Time {
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DisplayTimestamp returns a human-readable timestamp
func (r *DownloadRecord) DisplayTimestamp() string {
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return r.Timestamp
	}
	return t.Local().Format("Jan 02, 2006 15:04")
}

// Publisher returns the publisher half of the identifier, empty when
// the identifier is malformed
func (r *DownloadRecord) Publisher() string {
	publisher, _, err := SplitIdentifier(r.ID)
	if err != nil {
		return ""
	}
	return publisher
}
