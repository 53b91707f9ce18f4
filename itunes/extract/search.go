package extract

import (
	"strings"

	"github.com/xeptore/itms/iterutil"
	"github.com/xeptore/itms/itunes/viewml"
)

const genreLabelPrefix = "Genre: "

// Search extracts the basic search results page: the same grid-of-tiles
// walk as the artist albums grid, with each tile additionally carrying a
// partial artist and genre when present.
func Search(root *viewml.Node) ([]AlbumTile, error) {
	scroll := root.FirstChild("ScrollView")
	if nil == scroll {
		return nil, missing("Document/ScrollView")
	}

	var out []AlbumTile
	for _, tile := range gridTiles(scroll) {
		t, ok := albumTile(tile)
		if !ok {
			continue
		}

		if view, ok := iterutil.First(tile.Descendants("ViewArtist")); ok {
			t.ArtistID, _ = view.Attr("id")
			if name, ok := view.Attr("draggingName"); ok {
				t.ArtistName = name
			} else {
				t.ArtistName = view.Text()
			}
		}

		if view, ok := iterutil.First(tile.Descendants("ViewGenre")); ok {
			t.GenreID, _ = view.Attr("id")
			t.GenreName = strings.TrimPrefix(view.Text(), genreLabelPrefix)
		}

		out = append(out, t)
	}
	return out, nil
}
