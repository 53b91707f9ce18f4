// Package extract turns parsed view-description documents into plain
// records. Extractors never perform I/O: document in, record out. A
// structurally absent optional node yields a missing value, not an error;
// absent required regions and failed numeric patterns yield *Error naming
// the path, and the caller decides whether that is fatal.
package extract

import (
	"fmt"
)

type Error struct {
	// Path names the structural location that was missing or malformed,
	// e.g. "Document/ScrollView".
	Path   string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("document node missing: %s", e.Path)
	}
	return fmt.Sprintf("document node %s: %s", e.Path, e.Reason)
}

func missing(path string) *Error {
	return &Error{Path: path, Reason: ""}
}

type PathSegment struct {
	Name string
	URL  string
}

// Breadcrumb is the ordered Path region of a page. By service convention
// the first segment names the primary genre and the last segment names the
// page subject.
type Breadcrumb []PathSegment

func (b Breadcrumb) Title() string {
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].Name
}

func (b Breadcrumb) GenreName() string {
	if len(b) == 0 {
		return ""
	}
	return b[0].Name
}

type Image struct {
	URL    string
	Width  int
	Height int
}

// AlbumTile is one cell of an album grid: the artist page's selected
// albums and the search result list both use it. Artist and genre parts
// are only ever present on search tiles.
type AlbumTile struct {
	ID         string
	Title      string
	Thumb      *Image
	ArtistID   string
	ArtistName string
	GenreID    string
	GenreName  string
}

type ArtistTile struct {
	ID    string
	Name  string
	Thumb *Image
}

type AlbumSummary struct {
	ID    string
	Title string
}
