package itunes

import (
	"github.com/xeptore/itms/itunes/extract"
)

type Image struct {
	URL    string
	Width  int
	Height int
}

func imageFrom(img *extract.Image) *Image {
	if nil == img {
		return nil
	}
	return &Image{URL: img.URL, Width: img.Width, Height: img.Height}
}

// PathSegment is one element of a page breadcrumb.
type PathSegment struct {
	Name string
	URL  string
}

func pathFrom(b extract.Breadcrumb) []PathSegment {
	out := make([]PathSegment, len(b))
	for i, seg := range b {
		out[i] = PathSegment{Name: seg.Name, URL: seg.URL}
	}
	return out
}

// Genre is a plain value object. The store exposes genre pages, but
// nothing here fetches them yet.
type Genre struct {
	ID   string
	Name string
}

// Song is one track of an album. Every field comes from the parent
// album's single extraction pass; songs are never fetched independently.
type Song struct {
	ID           string
	Title        string
	Album        *Album
	Artist       *Artist
	Genre        *Genre
	Year         int
	TrackNumber  int
	TrackCount   int
	DiscNumber   int
	DiscCount    int
	Explicit     bool
	Comments     string
	Copyright    string
	PreviewURL   string
	ReleaseDate  string
	PriceDisplay string
	VendorID     string
}
