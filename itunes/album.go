package itunes

import (
	"context"
	"fmt"

	"github.com/xeptore/itms/itunes/extract"
)

// Album is a lazy handle on an album page. All of its fields form a
// single group populated by one viewAlbum fetch; title and artist are
// often prefilled by the parent document that produced the handle, and
// the thumbnail is only ever prefilled (discography and search tiles
// carry one, the album page itself does not).
type Album struct {
	sess *Session
	id   string

	basic group

	// Prefill flags are set at construction, before the handle is
	// published, and never written again. Accessors may read them and the
	// fields they cover without holding the group mutex; everything else
	// goes through basic.load.
	titlePrefilled  bool
	artistPrefilled bool
	genrePrefilled  bool

	title  string
	artist *Artist
	genre  *Genre
	cover  *Image
	thumb  *Image
	path   []PathSegment
	info   []string
	notes  []string
	tracks []*Song
}

func newAlbum(sess *Session, id string) *Album {
	return &Album{sess: sess, id: id}
}

func newAlbumPrefilled(sess *Session, id, title string, artist *Artist) *Album {
	a := newAlbum(sess, id)
	a.title = title
	a.titlePrefilled = title != ""
	a.artist = artist
	a.artistPrefilled = nil != artist
	return a
}

func albumFromTile(sess *Session, tile extract.AlbumTile) *Album {
	var artist *Artist
	if tile.ArtistID != "" || tile.ArtistName != "" {
		artist = newArtistPrefilled(sess, tile.ArtistID, tile.ArtistName)
	}
	a := newAlbumPrefilled(sess, tile.ID, tile.Title, artist)
	a.thumb = imageFrom(tile.Thumb)
	if tile.GenreID != "" || tile.GenreName != "" {
		a.genre = &Genre{ID: tile.GenreID, Name: tile.GenreName}
		a.genrePrefilled = true
	}
	return a
}

func (a *Album) ID() string {
	return a.id
}

func (a *Album) Title(ctx context.Context) (string, error) {
	if a.titlePrefilled {
		return a.title, nil
	}
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return "", err
	}
	return a.title, nil
}

// Artist may be only partially populated: a handle prefilled with name
// and id that fetches its own page on first access of anything else.
func (a *Album) Artist(ctx context.Context) (*Artist, error) {
	if a.artistPrefilled {
		return a.artist, nil
	}
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.artist, nil
}

func (a *Album) Genre(ctx context.Context) (*Genre, error) {
	if a.genrePrefilled {
		return a.genre, nil
	}
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.genre, nil
}

func (a *Album) Cover(ctx context.Context) (*Image, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.cover, nil
}

// Thumb is the small grid image a parent document supplied, or nil. It is
// never fetched: album pages carry no thumbnail of their own.
func (a *Album) Thumb() *Image {
	return a.thumb
}

func (a *Album) Path(ctx context.Context) ([]PathSegment, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.path, nil
}

// Info is the page's free-standing text lines (release date, song count
// and the like, as display text).
func (a *Album) Info(ctx context.Context) ([]string, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.info, nil
}

// Notes is empty for pages without a notes container.
func (a *Album) Notes(ctx context.Context) ([]string, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.notes, nil
}

// Tracks preserves the document's track list order.
func (a *Album) Tracks(ctx context.Context) ([]*Song, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.tracks, nil
}

func (a *Album) populateBasic(ctx context.Context) error {
	root, err := a.sess.fetchPage(ctx, a.sess.viewAlbumURL(a.id))
	if nil != err {
		return err
	}
	page, err := extract.Album(root)
	if nil != err {
		return fmt.Errorf("failed to extract album page for %s: %w", a.id, err)
	}
	a.sess.debugDumpRecord("album", a.id, page)

	if !a.titlePrefilled {
		a.title = page.Breadcrumb.Title()
	}
	a.path = pathFrom(page.Breadcrumb)
	a.cover = imageFrom(page.Cover)
	a.info = page.Info
	a.notes = page.Notes

	if !a.artistPrefilled && (page.ArtistID != "" || page.ArtistName != "") {
		a.artist = newArtistPrefilled(a.sess, page.ArtistID, page.ArtistName)
	}
	if !a.genrePrefilled && (page.GenreID != "" || page.Breadcrumb.GenreName() != "") {
		a.genre = &Genre{ID: page.GenreID, Name: page.Breadcrumb.GenreName()}
	}

	a.tracks = make([]*Song, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		song := &Song{
			ID:           t.SongID,
			Title:        t.Title,
			Album:        a,
			Artist:       a.artist,
			Year:         t.Year,
			TrackNumber:  t.TrackNumber,
			TrackCount:   t.TrackCount,
			DiscNumber:   t.DiscNumber,
			DiscCount:    t.DiscCount,
			Explicit:     t.Explicit,
			Comments:     t.Comments,
			Copyright:    t.Copyright,
			PreviewURL:   t.PreviewURL,
			ReleaseDate:  t.ReleaseDate,
			PriceDisplay: t.PriceDisplay,
			VendorID:     t.VendorID,
		}
		if t.GenreID != "" || t.GenreName != "" {
			song.Genre = &Genre{ID: t.GenreID, Name: t.GenreName}
		}
		a.tracks = append(a.tracks, song)
	}
	return nil
}
