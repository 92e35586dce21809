package routing

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultChunkSize is the number of points per navigation link. Google Maps
// accepts an origin, a destination and up to eight waypoints in a directions URL.
const DefaultChunkSize = 10

const mapsDirectionsURL = "https://www.google.com/maps/dir/?api=1"

// BuildLinks splits tour into overlapping chunks of at most chunkSize points
// and renders each chunk as a Google Maps cycling-directions URL.
//
// Chunks start every chunkSize-1 positions, so consecutive chunks share exactly
// one point: the destination of one link is the origin of the next. Chunks of a
// single point cannot form a leg and are dropped. labels[i] is the human-readable
// text of point i; it is query-escaped before embedding.
func BuildLinks(tour Tour, labels []string, chunkSize int) ([]string, error) {
	if chunkSize < 2 {
		return nil, fmt.Errorf("build links: chunk size must be at least 2, got %d: %w", chunkSize, ErrInvalidInput)
	}

	encoded := make([]string, len(tour))
	for pos, idx := range tour {
		if idx < 0 || idx >= len(labels) {
			return nil, fmt.Errorf("build links: no label for point %d: %w", idx, ErrInvalidInput)
		}
		encoded[pos] = url.QueryEscape(labels[idx])
	}

	step := chunkSize - 1
	links := make([]string, 0, len(tour)/step+1)
	for start := 0; start < len(encoded); start += step {
		end := min(start+chunkSize, len(encoded))
		chunk := encoded[start:end]
		if len(chunk) <= 1 {
			continue
		}
		links = append(links, mapsLink(chunk))
	}

	return links, nil
}

func mapsLink(chunk []string) string {
	var b strings.Builder
	b.WriteString(mapsDirectionsURL)
	b.WriteString("&origin=")
	b.WriteString(chunk[0])
	b.WriteString("&destination=")
	b.WriteString(chunk[len(chunk)-1])
	b.WriteString("&travelmode=bicycle&waypoints=")
	b.WriteString(strings.Join(chunk[1:len(chunk)-1], "|"))
	return b.String()
}
