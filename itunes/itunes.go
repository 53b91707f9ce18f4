// Package itunes is a client for the music store's catalog pages. The
// store has no documented data API; it serves view-description XML meant
// for a rendering client, optionally AES-CBC encrypted and gzip
// compressed. This package fetches those pages, decodes them, and exposes
// the result as lazily-populated domain entities: one page fetch
// populates a whole group of logically related fields at once.
package itunes

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xeptore/itms/cache"
	"github.com/xeptore/itms/config"
	"github.com/xeptore/itms/itunes/decode"
	"github.com/xeptore/itms/itunes/extract"
	"github.com/xeptore/itms/itunes/viewml"
	"github.com/xeptore/itms/log"
)

type Session struct {
	cfg        *config.Config
	transport  Transport
	logger     zerolog.Logger
	decodeOpts decode.Options

	// Optional id-keyed entity caches; nil unless WithEntityCache is used.
	artists   *cache.Cache[*Artist]
	albums    *cache.Cache[*Album]
	entityTTL time.Duration
}

type Option func(*Session)

func WithTransport(t Transport) Option {
	return func(s *Session) { s.transport = t }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithDecodeOptions(o decode.Options) Option {
	return func(s *Session) { s.decodeOpts = o }
}

// WithEntityCache interns entities by id on the session. This changes the
// observable contract: by default two requests for the same artist id
// yield two independent objects and two round trips; with the cache
// enabled they yield one shared object and at most one round trip per
// field group until the entry expires.
func WithEntityCache(maxEntities int64, ttl time.Duration) Option {
	return func(s *Session) {
		if ttl <= 0 {
			ttl = cache.DefaultEntityTTL
		}
		s.artists = cache.New[*Artist](maxEntities)
		s.albums = cache.New[*Album](maxEntities)
		s.entityTTL = ttl
	}
}

func New(cfg *config.Config, opts ...Option) *Session {
	if nil == cfg {
		cfg = config.Default()
	}
	s := &Session{
		cfg:        cfg,
		logger:     log.Nop(),
		decodeOpts: decode.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if nil == s.transport {
		s.transport = NewHTTPTransport(cfg.AcceptLanguage, s.logger)
	}
	return s
}

// Artist returns a lazy handle for the given artist id. No I/O happens
// until a field is accessed.
func (s *Session) Artist(id string) (*Artist, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: artist id", ErrEmptyID)
	}
	if nil != s.artists {
		return s.artists.Fetch(id, s.entityTTL, func() (*Artist, error) {
			return newArtist(s, id), nil
		})
	}
	return newArtist(s, id), nil
}

// Album returns a lazy handle for the given album id. No I/O happens
// until a field is accessed.
func (s *Session) Album(id string) (*Album, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: album id", ErrEmptyID)
	}
	if nil != s.albums {
		return s.albums.Fetch(id, s.entityTTL, func() (*Album, error) {
			return newAlbum(s, id), nil
		})
	}
	return newAlbum(s, id), nil
}

// Search runs a basic store search and returns partially-populated album
// summaries in result order. Accessing an unfilled field on a result
// triggers that album's page fetch.
func (s *Session) Search(ctx context.Context, term string) ([]*Album, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptySearchTerm
	}

	ctx, cancel := context.WithTimeout(ctx, config.SearchRequestTimeout)
	defer cancel()

	root, err := s.fetchPage(ctx, s.searchURL(term))
	if nil != err {
		return nil, err
	}
	tiles, err := extract.Search(root)
	if nil != err {
		return nil, fmt.Errorf("failed to extract search results: %w", err)
	}

	out := make([]*Album, 0, len(tiles))
	for _, tile := range tiles {
		out = append(out, albumFromTile(s, tile))
	}
	s.logger.Debug().Str("term", term).Int("results", len(out)).Msg("Search completed")
	return out, nil
}

func (s *Session) fetchPage(ctx context.Context, pageURL string) (*viewml.Node, error) {
	body, header, err := s.transport.Get(ctx, pageURL)
	if nil != err {
		s.debugDumpError(pageURL, err)
		return nil, err
	}

	doc, err := decode.Bytes(body, header, s.decodeOpts)
	if nil != err {
		return nil, fmt.Errorf("failed to decode document from %s: %w", pageURL, err)
	}
	s.debugDumpDocument(pageURL, doc)

	root, err := viewml.Parse(doc)
	if nil != err {
		return nil, fmt.Errorf("failed to parse document from %s: %w", pageURL, err)
	}
	s.logger.Trace().Str("url", pageURL).Int("size", len(doc)).Msg("Fetched store page")
	return root, nil
}

func (s *Session) searchURL(term string) string {
	return s.cfg.BaseURL + "/search?term=" + url.QueryEscape(term)
}

func (s *Session) viewAlbumURL(id string) string {
	return s.cfg.BaseURL + "/viewAlbum?id=" + url.QueryEscape(id)
}

func (s *Session) viewArtistURL(id string) string {
	return s.cfg.BaseURL + "/viewArtist?id=" + url.QueryEscape(id)
}

func (s *Session) biographyURL(id string) string {
	return s.cfg.BaseURL + "/biography?id=" + url.QueryEscape(id)
}

func (s *Session) influencersURL(id string) string {
	return s.cfg.BaseURL + "/influencers?id=" + url.QueryEscape(id)
}

func (s *Session) browseArtistURL(id string) string {
	return s.cfg.BaseURL + "/browseArtist?id=" + url.QueryEscape(id)
}
