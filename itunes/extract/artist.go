package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xeptore/itms/iterutil"
	"github.com/xeptore/itms/itunes/viewml"
)

type ArtistPage struct {
	ArtistID   string
	GenreID    string
	Breadcrumb Breadcrumb
	Website    *string
	Albums     []AlbumTile
	// Counters of the bounded best-selling subset shown on the page:
	// "Albums: <start>-<end> of <total>". Total falls back to the tile
	// count when the page carries no such label.
	AlbumsStart int
	AlbumsEnd   int
	AlbumsTotal int
}

var albumCountersRe = regexp.MustCompile(`Albums:\s*(\d+)-(\d+)\s+of\s+(\d+)`)

// Artist extracts the artist view page: website link, the selected albums
// grid, and the pagination counters.
func Artist(root *viewml.Node) (*ArtistPage, error) {
	scroll := root.FirstChild("ScrollView")
	if nil == scroll {
		return nil, missing("Document/ScrollView")
	}

	out := &ArtistPage{Breadcrumb: Path(root)}
	out.ArtistID, _ = root.Attr("artistId")
	out.GenreID, _ = root.Attr("genreId")

	if n, ok := iterutil.First(scroll.Descendants("OpenURL")); ok {
		if u, ok := n.Attr("url"); ok {
			out.Website = &u
		}
	}

	for _, tile := range gridTiles(scroll) {
		if t, ok := albumTile(tile); ok {
			out.Albums = append(out.Albums, t)
		}
	}

	start, end, total, err := albumCounters(scroll)
	if nil != err {
		return nil, err
	}
	if total == 0 {
		total = len(out.Albums)
	}
	out.AlbumsStart, out.AlbumsEnd, out.AlbumsTotal = start, end, total

	return out, nil
}

func albumCounters(scroll *viewml.Node) (start, end, total int, err error) {
	for b := range scroll.Descendants("B") {
		text := b.Text()
		if !strings.Contains(text, "Albums:") {
			continue
		}
		m := albumCountersRe.FindStringSubmatch(text)
		if nil == m {
			return 0, 0, 0, &Error{Path: "Document/ScrollView//B", Reason: "album counters did not match: " + text}
		}
		start, _ = strconv.Atoi(m[1])
		end, _ = strconv.Atoi(m[2])
		total, _ = strconv.Atoi(m[3])
		return start, end, total, nil
	}
	return 0, 0, 0, nil
}

// Discography extracts the browse-artist page: a property-list array with
// one dictionary per album, in release order as the service emits it.
func Discography(root *viewml.Node) ([]AlbumSummary, error) {
	region := root.FirstChild("TrackList")
	if nil == region {
		return nil, missing("Document/TrackList")
	}

	ds, err := dicts(region)
	if nil != err {
		return nil, err
	}

	out := make([]AlbumSummary, 0, len(ds))
	for _, d := range ds {
		// The array carries header and separator dicts alongside the
		// albums; only dicts with a playlist id are albums.
		if !d.Has("playlistId") {
			continue
		}
		out = append(out, AlbumSummary{
			ID:    d.String("playlistId"),
			Title: d.String("playlistName"),
		})
	}
	return out, nil
}

// Biography extracts the artist biography page body as ordered text lines.
func Biography(root *viewml.Node) ([]string, error) {
	scroll := root.FirstChild("ScrollView")
	if nil == scroll {
		return nil, missing("Document/ScrollView")
	}

	var lines []string
	for n := range scroll.Descendants("TextView") {
		if text := n.Text(); text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}

// Influencers extracts the artist influencers page: a grid of artist tiles.
func Influencers(root *viewml.Node) ([]ArtistTile, error) {
	scroll := root.FirstChild("ScrollView")
	if nil == scroll {
		return nil, missing("Document/ScrollView")
	}

	var out []ArtistTile
	for _, tile := range gridTiles(scroll) {
		view, ok := iterutil.First(tile.Descendants("ViewArtist"))
		if !ok {
			continue
		}

		id, _ := view.Attr("id")
		name, ok := view.Attr("draggingName")
		if !ok {
			name = view.Text()
		}

		t := ArtistTile{ID: id, Name: name}
		if pic, ok := iterutil.First(tile.Descendants("PictureView")); ok {
			t.Thumb = pictureImage(pic)
		}
		out = append(out, t)
	}
	return out, nil
}
