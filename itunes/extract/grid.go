package extract

import (
	"strconv"

	"github.com/xeptore/itms/iterutil"
	"github.com/xeptore/itms/itunes/viewml"
)

// gridTiles flattens the two-level album grid: the first MatrixView under
// the scroll region holds HBoxView rows, each row holds VBoxView tiles.
// Document order is preserved across rows.
func gridTiles(scroll *viewml.Node) []*viewml.Node {
	matrix, ok := iterutil.First(scroll.Descendants("MatrixView"))
	if !ok {
		return nil
	}

	var tiles []*viewml.Node
	for _, row := range matrix.ChildrenOf("HBoxView") {
		tiles = append(tiles, row.ChildrenOf("VBoxView")...)
	}
	return tiles
}

// albumTile reads one grid cell. Cells without a ViewAlbum node are
// decoration (spacers, captions) and are reported as not-a-tile.
func albumTile(tile *viewml.Node) (AlbumTile, bool) {
	view, ok := iterutil.First(tile.Descendants("ViewAlbum"))
	if !ok {
		return AlbumTile{}, false
	}

	id, _ := view.Attr("id")
	title, ok := view.Attr("draggingName")
	if !ok {
		title = view.Text()
	}

	out := AlbumTile{ID: id, Title: title}
	if pic, ok := iterutil.First(tile.Descendants("PictureView")); ok {
		out.Thumb = pictureImage(pic)
	}
	return out, true
}

func pictureImage(pic *viewml.Node) *Image {
	url, _ := pic.Attr("url")
	img := &Image{URL: url}
	if w, ok := pic.Attr("width"); ok {
		img.Width, _ = strconv.Atoi(w)
	}
	if h, ok := pic.Attr("height"); ok {
		img.Height, _ = strconv.Atoi(h)
	}
	return img
}
