package itunes

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xeptore/itms/itunes/extract"
	"github.com/xeptore/itms/log"
	"github.com/xeptore/itms/mathutil"
	"github.com/xeptore/itms/ratelimit"
)

// Artist is a lazy handle on an artist page. Its fields live in four
// groups, each populated by one fetch: the basic group (name, website,
// genre, path, selected albums, counters) from the artist view page, the
// discography group from the browse page, and the biography and
// influencers groups from their own pages. Groups fail and succeed
// independently.
type Artist struct {
	sess *Session
	id   string

	basic          group
	name           string
	namePrefilled  bool
	website        *string
	genre          *Genre
	path           []PathSegment
	selectedAlbums []*Album
	albumsStart    int
	albumsEnd      int
	totalAlbums    int

	disco  group
	albums []*Album

	bio       group
	biography []string

	infl        group
	influencers []*Artist
}

func newArtist(sess *Session, id string) *Artist {
	return &Artist{sess: sess, id: id}
}

func newArtistPrefilled(sess *Session, id, name string) *Artist {
	a := newArtist(sess, id)
	a.name = name
	a.namePrefilled = name != ""
	return a
}

func (a *Artist) ID() string {
	return a.id
}

func (a *Artist) Name(ctx context.Context) (string, error) {
	if a.namePrefilled {
		return a.name, nil
	}
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return "", err
	}
	return a.name, nil
}

// Website returns the artist's outbound site link, or nil when the page
// carries none.
func (a *Artist) Website(ctx context.Context) (*string, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.website, nil
}

func (a *Artist) Genre(ctx context.Context) (*Genre, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.genre, nil
}

func (a *Artist) Path(ctx context.Context) ([]PathSegment, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.path, nil
}

// SelectedAlbums is the bounded best-selling subset shown on the artist
// page, not the full discography.
func (a *Artist) SelectedAlbums(ctx context.Context) ([]*Album, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return nil, err
	}
	return a.selectedAlbums, nil
}

// SelectedAlbumsRange returns the page's pagination counters: the 1-based
// start and end positions of the selected subset. Both are zero when the
// page carries no counters label.
func (a *Artist) SelectedAlbumsRange(ctx context.Context) (start, end int, err error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return 0, 0, err
	}
	return a.albumsStart, a.albumsEnd, nil
}

// TotalAlbums is never less than the number of selected albums.
func (a *Artist) TotalAlbums(ctx context.Context) (int, error) {
	if err := a.basic.load(ctx, a.populateBasic); nil != err {
		return 0, err
	}
	return a.totalAlbums, nil
}

// Albums is the full discography in service order, fetched from the
// browse page independently of the basic group.
func (a *Artist) Albums(ctx context.Context) ([]*Album, error) {
	if err := a.disco.load(ctx, a.populateDiscography); nil != err {
		return nil, err
	}
	return a.albums, nil
}

func (a *Artist) Biography(ctx context.Context) ([]string, error) {
	if err := a.bio.load(ctx, a.populateBiography); nil != err {
		return nil, err
	}
	return a.biography, nil
}

func (a *Artist) Influencers(ctx context.Context) ([]*Artist, error) {
	if err := a.infl.load(ctx, a.populateInfluencers); nil != err {
		return nil, err
	}
	return a.influencers, nil
}

func (a *Artist) populateBasic(ctx context.Context) error {
	root, err := a.sess.fetchPage(ctx, a.sess.viewArtistURL(a.id))
	if nil != err {
		return err
	}
	page, err := extract.Artist(root)
	if nil != err {
		return fmt.Errorf("failed to extract artist page for %s: %w", a.id, err)
	}
	a.sess.debugDumpRecord("artist", a.id, page)

	if !a.namePrefilled {
		a.name = page.Breadcrumb.Title()
	}
	a.website = page.Website
	a.path = pathFrom(page.Breadcrumb)
	if page.GenreID != "" || page.Breadcrumb.GenreName() != "" {
		a.genre = &Genre{ID: page.GenreID, Name: page.Breadcrumb.GenreName()}
	}

	a.selectedAlbums = make([]*Album, 0, len(page.Albums))
	for _, tile := range page.Albums {
		album := newAlbumPrefilled(a.sess, tile.ID, tile.Title, a)
		album.thumb = imageFrom(tile.Thumb)
		a.selectedAlbums = append(a.selectedAlbums, album)
	}

	a.albumsStart = page.AlbumsStart
	a.albumsEnd = page.AlbumsEnd
	a.totalAlbums = max(page.AlbumsTotal, len(a.selectedAlbums))
	return nil
}

func (a *Artist) populateDiscography(ctx context.Context) error {
	root, err := a.sess.fetchPage(ctx, a.sess.browseArtistURL(a.id))
	if nil != err {
		return err
	}
	summaries, err := extract.Discography(root)
	if nil != err {
		return fmt.Errorf("failed to extract discography for %s: %w", a.id, err)
	}
	a.sess.debugDumpRecord("discography", a.id, summaries)

	a.albums = make([]*Album, 0, len(summaries))
	for _, sum := range summaries {
		a.albums = append(a.albums, newAlbumPrefilled(a.sess, sum.ID, sum.Title, a))
	}
	return nil
}

func (a *Artist) populateBiography(ctx context.Context) error {
	root, err := a.sess.fetchPage(ctx, a.sess.biographyURL(a.id))
	if nil != err {
		return err
	}
	lines, err := extract.Biography(root)
	if nil != err {
		return fmt.Errorf("failed to extract biography for %s: %w", a.id, err)
	}
	a.biography = lines
	return nil
}

func (a *Artist) populateInfluencers(ctx context.Context) error {
	root, err := a.sess.fetchPage(ctx, a.sess.influencersURL(a.id))
	if nil != err {
		return err
	}
	tiles, err := extract.Influencers(root)
	if nil != err {
		return fmt.Errorf("failed to extract influencers for %s: %w", a.id, err)
	}

	a.influencers = make([]*Artist, 0, len(tiles))
	for _, tile := range tiles {
		a.influencers = append(a.influencers, newArtistPrefilled(a.sess, tile.ID, tile.Name))
	}
	return nil
}

// PrefetchAlbums warms up the track lists of the full discography with a
// bounded number of concurrent page fetches. Each album still goes
// through its own field group, so nothing is fetched twice and later
// field accesses are cache hits. Document order of Albums is unaffected.
func (a *Artist) PrefetchAlbums(ctx context.Context, concurrency int) error {
	albums, err := a.Albums(ctx)
	if nil != err {
		return err
	}
	if concurrency <= 0 {
		concurrency = ratelimit.DiscographyPrefetchConcurrency
	}

	a.sess.logger.Debug().
		Str("artist_id", a.id).
		Int("albums", len(albums)).
		Int("waves", mathutil.CeilInts(len(albums), concurrency)).
		Msg("Prefetching discography")

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(concurrency)
	for _, album := range albums {
		wg.Go(func() (err error) {
			defer func() {
				if r := recover(); nil != r {
					a.sess.logger.Error().Func(log.Panic(r)).Str("album_id", album.ID()).Msg("Album prefetch panicked")
					err = fmt.Errorf("album prefetch panicked: %v", r)
				}
			}()
			time.Sleep(ratelimit.PageFetchSleep())
			if _, err := album.Tracks(ctx); nil != err {
				return fmt.Errorf("failed to prefetch album %s: %v", album.ID(), err)
			}
			return nil
		})
	}
	return wg.Wait()
}
