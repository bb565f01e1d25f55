package model

// Attribution is the author and license metadata of a Wikimedia Commons file.
type Attribution struct {
	Author               *string `json:"author"`
	License              *string `json:"license"`
	Description          *string `json:"description"`
	Date                 *string `json:"date"`
	Source               *string `json:"source"`
	URL                  string  `json:"url"`
	FormattedAttribution *string `json:"formatted_attribution"`
	Error                string  `json:"error,omitempty"`
	ItemName             string  `json:"item_name,omitempty"`
	OriginalURL          string  `json:"original_url,omitempty"`
}

// Found reports whether any metadata field was extracted.
func (a *Attribution) Found() bool {
	for _, f := range []*string{a.Author, a.License, a.Description, a.Date, a.Source, a.FormattedAttribution} {
		if f != nil {
			return true
		}
	}
	return false
}

// ImageItem is a named image URL found in a catalog export.
type ImageItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ImageRecord describes the image stored for one aircraft.
type ImageRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Category     string `json:"category"`
	OriginalURL  string `json:"original_url"`
	// LocalPath is relative to the output directory, e.g.
	// "aircraft/1_Boeing_737.jpg" or "fallback/comercial.jpg".
	LocalPath    string `json:"local_path"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Format       string `json:"format,omitempty"`
	UsedFallback bool   `json:"used_fallback"`
	Error        string `json:"error,omitempty"`
}
