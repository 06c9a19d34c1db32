package transcript

// Segment is one recognized span of speech. Start and End are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the ordered segment list the engine produced for one media file.
// Segments are in recognition order, which is chronological.
type Transcript struct {
	MediaPath string    `json:"media_path,omitempty"`
	Language  string    `json:"language,omitempty"`
	Segments  []Segment `json:"segments"`
}

// Entry is one numbered subtitle block
type Entry struct {
	Index int
	Start string
	End   string
	Text  string
}
