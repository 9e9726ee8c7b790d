package markdown

import "strings"

const imagePrefix = "!["

// Image is a captioned image reference found in a markdown document.
type Image struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
}

// ImageMap maps captions to image locations in document order.
// Setting an existing caption replaces its URL without moving it.
type ImageMap struct {
	entries []Image
	index   map[string]int
}

// NewImageMap creates an empty ImageMap.
func NewImageMap() *ImageMap {
	return &ImageMap{index: make(map[string]int)}
}

// Set stores url under caption.
func (m *ImageMap) Set(caption, url string) {
	if i, ok := m.index[caption]; ok {
		m.entries[i].URL = url
		return
	}
	m.index[caption] = len(m.entries)
	m.entries = append(m.entries, Image{Caption: caption, URL: url})
}

// Get returns the URL stored for caption.
func (m *ImageMap) Get(caption string) (string, bool) {
	i, ok := m.index[caption]
	if !ok {
		return "", false
	}
	return m.entries[i].URL, true
}

// Len returns the number of captions in the map.
func (m *ImageMap) Len() int {
	return len(m.entries)
}

// Images returns a copy of the entries in document order.
func (m *ImageMap) Images() []Image {
	out := make([]Image, len(m.entries))
	copy(out, m.entries)
	return out
}

// ExtractImages collects every line of the form ![caption](url).
// Images embedded mid-line and reference-style images are not recognized.
func ExtractImages(content string) *ImageMap {
	images := NewImageMap()
	for _, line := range strings.Split(content, "\n") {
		caption, url, ok := parseImageLine(line)
		if !ok {
			continue
		}
		images.Set(caption, url)
	}
	return images
}

func parseImageLine(line string) (caption, url string, ok bool) {
	if !strings.HasPrefix(line, imagePrefix) || !strings.Contains(line, "](") || !strings.Contains(line, ")") {
		return "", "", false
	}

	openBracket := strings.Index(line, "[")
	closeBracket := strings.Index(line, "]")
	openParen := strings.Index(line, "(")
	if closeBracket < openBracket || openParen < 0 {
		return "", "", false
	}
	// A ")" inside the caption does not close the URL.
	closeParen := strings.Index(line[openParen:], ")")
	if closeParen < 0 {
		return "", "", false
	}

	return line[openBracket+1 : closeBracket], line[openParen+1 : openParen+closeParen], true
}
