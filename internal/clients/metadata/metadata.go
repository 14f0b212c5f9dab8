package metadata

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client is the interface for metadata search providers.
type Client interface {
	Search(ctx context.Context, query SearchQuery) []MediaSummary
}

// MediaType is the closed set of kinds the upstream understands.
type MediaType int

const (
	MediaTypeUnknown MediaType = iota
	MediaTypeMovie
	MediaTypeSeries
	MediaTypeEpisode
)

var mediaTypeNames = map[MediaType]string{
	MediaTypeMovie:   "movie",
	MediaTypeSeries:  "series",
	MediaTypeEpisode: "episode",
}

var mediaTypeValues = map[string]MediaType{
	"movie":   MediaTypeMovie,
	"series":  MediaTypeSeries,
	"episode": MediaTypeEpisode,
}

// ParseMediaType maps a wire value to its MediaType. ok is false for
// anything outside movie/series/episode, including the empty string.
func ParseMediaType(s string) (MediaType, bool) {
	t, ok := mediaTypeValues[s]
	return t, ok
}

func (t MediaType) String() string {
	if name, ok := mediaTypeNames[t]; ok {
		return name
	}
	return ""
}

func (t MediaType) MarshalJSON() ([]byte, error) {
	name, ok := mediaTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("cannot encode media type %d", int(t))
	}
	return json.Marshal(name)
}

func (t *MediaType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("media type: %w", err)
	}
	parsed, ok := ParseMediaType(s)
	if !ok {
		return fmt.Errorf("unknown media type %q", s)
	}
	*t = parsed
	return nil
}

// SearchQuery holds the caller side parameters of a title search. Zero
// values mean "absent" and are never sent upstream.
type SearchQuery struct {
	Term string
	Type MediaType
	Year string
	Page int
}

// MediaSummary is one search hit, in the upstream's own field names.
type MediaSummary struct {
	Title  string    `json:"Title"`
	Year   string    `json:"Year"`
	ImdbID string    `json:"imdbID"`
	Type   MediaType `json:"Type"`
	Poster string    `json:"Poster"`
}

// UpstreamResult is the raw search envelope. Response is the upstream's own
// success flag ("True"/"False"); Search is only populated when it is "True".
type UpstreamResult struct {
	Search       []MediaSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// Found reports whether the upstream signalled a successful search.
func (r *UpstreamResult) Found() bool {
	return r.Response == "True"
}
