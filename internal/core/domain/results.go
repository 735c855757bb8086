package domain

// AvailableExtension is a declared extension the primary registry can
// serve directly
type AvailableExtension struct {
	ID   string `json:"id"`
	UUID string `json:"uuid,omitempty"`
	URL  string `json:"url"` // direct asset URL from the registry
}

// UnavailableExtension is a declared extension the primary registry
// could not resolve to a direct asset URL
type UnavailableExtension struct {
	ID   string `json:"id"`
	UUID string `json:"uuid,omitempty"`
}

// Results is the snapshot of one probe run. Both slices preserve
// declaration order; each run overwrites the previous snapshot.
type Results struct {
	Available   []AvailableExtension   `json:"available"`
	Unavailable []UnavailableExtension `json:"unavailable"`
}

// Resolution is the outcome of probing one declared extension
type Resolution struct {
	Available bool
	URL       string // set only when Available
}

// NewResults creates an empty snapshot with both slices allocated so
// the serialized form always carries both fields
func NewResults() *Results {
	return &Results{
		Available:   []AvailableExtension{},
		Unavailable: []UnavailableExtension{},
	}
}

// Add records the resolution outcome for one declared extension
func (r *Results) Add(ext DeclaredExtension, res Resolution) {
	if res.Available {
		r.Available = append(r.Available, AvailableExtension{
			ID:   ext.ID,
			UUID: ext.UUID,
			URL:  res.URL,
		})
		return
	}
	r.Unavailable = append(r.Unavailable, UnavailableExtension{
		ID:   ext.ID,
		UUID: ext.UUID,
	})
}

// Counts returns the sizes of both partitions
func (r *Results) Counts() (available, unavailable int) {
	return len(r.Available), len(r.Unavailable)
}
