package extract

import (
	"regexp"

	"github.com/samber/lo"

	"github.com/xeptore/itms/itunes/viewml"
	"github.com/xeptore/itms/sliceutil"
)

type AlbumPage struct {
	ID         string
	ArtistID   string
	GenreID    string
	Breadcrumb Breadcrumb
	Cover      *Image
	ArtistName string
	Info       []string
	Notes      []string
	Tracks     []Track
}

type Track struct {
	SongID       string
	Title        string
	GenreID      string
	GenreName    string
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

var alphaRe = regexp.MustCompile(`[A-Za-z]`)

// Album extracts the album view page. Multiple ViewAlbum nodes usually
// exist in the document; the first one carrying both a draggingName
// attribute and a PictureView child is the page's own cover. The artist
// is resolved by matching ViewArtist ids against the root's artistId.
func Album(root *viewml.Node) (*AlbumPage, error) {
	scroll := root.FirstChild("ScrollView")
	if nil == scroll {
		return nil, missing("Document/ScrollView")
	}

	out := &AlbumPage{Breadcrumb: Path(root)}
	out.ID, _ = root.Attr("playlistId")
	out.ArtistID, _ = root.Attr("artistId")
	out.GenreID, _ = root.Attr("genreId")

	for view := range scroll.Descendants("ViewAlbum") {
		if _, ok := view.Attr("draggingName"); !ok {
			continue
		}
		pic := view.FirstChild("PictureView")
		if nil == pic {
			continue
		}
		out.Cover = pictureImage(pic)
		break
	}

	for view := range scroll.Descendants("ViewArtist") {
		if id, ok := view.Attr("id"); !ok || id != out.ArtistID {
			continue
		}
		if name, ok := view.Attr("draggingName"); ok {
			out.ArtistName = name
		} else {
			out.ArtistName = view.Text()
		}
		break
	}

	if main := scroll.FirstChild("VBoxView"); nil != main {
		out.Info = lo.FilterMap(main.ChildrenOf("TextView"), func(n *viewml.Node, _ int) (string, bool) {
			text := n.Text()
			return text, text != ""
		})

		// Notes only exist when the page carries the trailing container.
		if notes := main.LastChild("VBoxView"); nil != notes {
			for n := range notes.Descendants("TextView") {
				if text := n.Text(); text != "" {
					out.Notes = append(out.Notes, text)
				}
			}
		}
	}

	if region := root.FirstChild("TrackList"); nil != region {
		ds, err := dicts(region)
		if nil != err {
			return nil, err
		}
		out.Tracks = sliceutil.Map(ds, trackFromDict)
	}

	return out, nil
}

func trackFromDict(d Dict) Track {
	return Track{
		SongID:       d.String("songId"),
		Title:        d.String("itemName"),
		GenreID:      d.String("genreId"),
		GenreName:    d.String("genre"),
		Year:         d.Int("year"),
		TrackNumber:  d.Int("trackNumber"),
		TrackCount:   d.Int("trackCount"),
		DiscNumber:   d.Int("discNumber"),
		DiscCount:    d.Int("discCount"),
		Explicit:     d.Bool("explicit"),
		Comments:     d.String("comments"),
		Copyright:    d.String("copyright"),
		PreviewURL:   d.String("previewURL"),
		ReleaseDate:  alphaRe.ReplaceAllString(d.String("releaseDate"), ""),
		PriceDisplay: d.String("priceDisplay"),
		VendorID:     d.String("vendorId"),
	}
}
