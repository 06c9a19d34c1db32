package transcript

import (
	"fmt"
	"math"
	"strings"
)

// floatSlack absorbs binary representation error when scaling seconds to
// milliseconds, e.g. 0.29*1000 == 289.99999999999997.
const floatSlack = 1e-6

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
// Every component is truncated, never rounded. Hours widen past two digits
// instead of wrapping. Negative input is clamped to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	if math.IsInf(seconds, 1) {
		seconds = math.MaxFloat64
	}

	// hours stay in float so arbitrarily large inputs cannot overflow;
	// only the sub-hour remainder is converted to integer milliseconds
	hours := math.Floor(seconds / 3600)
	ms := int64(math.Floor(math.Mod(seconds, 3600)*1000 + floatSlack))
	if ms >= 3_600_000 {
		ms -= 3_600_000
		hours++
	}

	minutes := ms / 60_000
	secs := ms % 60_000 / 1000
	millis := ms % 1000

	return fmt.Sprintf("%02.0f:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Entries maps every segment to its subtitle entry, numbered from 1 in input order.
func Entries(segments []Segment) []Entry {
	entries := make([]Entry, 0, len(segments))
	for i, s := range segments {
		entries = append(entries, Entry{
			Index: i + 1,
			Start: FormatTimestamp(s.Start),
			End:   FormatTimestamp(s.End),
			Text:  s.Text,
		})
	}
	return entries
}

// String renders the entry as an SRT block, including the trailing blank line.
func (e Entry) String() string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n\n", e.Index, e.Start, e.End, e.Text)
}

// Build returns the plain transcript and the SRT document for segments.
// Segment text is used verbatim in both outputs and segments are neither
// validated, merged nor reordered.
func Build(segments []Segment) (plain string, srt string) {
	var pb, sb strings.Builder

	for _, e := range Entries(segments) {
		pb.WriteString(e.Text)
		sb.WriteString(e.String())
	}

	return pb.String(), sb.String()
}
