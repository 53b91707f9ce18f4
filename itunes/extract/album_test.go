package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/itms/itunes/extract"
)

const albumPageDoc = `<?xml version="1.0" encoding="utf-8"?>
<Document artistId="156989" genreId="20" playlistId="2190361">
	<Path>
		<PathElement displayName="Alternative">https://store.example.com/viewGenre?genreId=20</PathElement>
		<PathElement displayName="Radiohead">https://store.example.com/viewArtist?id=156989</PathElement>
		<PathElement displayName="Amnesiac">https://store.example.com/viewAlbum?id=2190361</PathElement>
	</Path>
	<ScrollView>
		<VBoxView>
			<MatrixView>
				<ViewAlbum id="2190361"/>
				<ViewAlbum id="2190361" draggingName="Amnesiac">
					<PictureView url="https://images.example.com/amnesiac.170x170.jpg" width="170" height="170"/>
				</ViewAlbum>
				<ViewArtist id="999">Someone Else</ViewArtist>
				<ViewArtist id="156989">Radiohead</ViewArtist>
			</MatrixView>
			<TextView>Release Date: June 5, 2001</TextView>
			<TextView>Total Songs: 11</TextView>
			<VBoxView>
				<TextView>The follow-up to Kid A, recorded in the same sessions.</TextView>
			</VBoxView>
		</VBoxView>
	</ScrollView>
	<TrackList>
		<plist>
			<array>
				<dict>
					<key>songId</key><string>2190371</string>
					<key>itemName</key><string>Packt Like Sardines in a Crushd Tin Box</string>
					<key>genreId</key><string>20</string>
					<key>genre</key><string>Alternative</string>
					<key>year</key><integer>2001</integer>
					<key>trackNumber</key><integer>1</integer>
					<key>trackCount</key><integer>11</integer>
					<key>discNumber</key><integer>1</integer>
					<key>discCount</key><integer>1</integer>
					<key>explicit</key><false/>
					<key>comments</key><string></string>
					<key>copyright</key><string>2001 Capitol Records</string>
					<key>previewURL</key><string>https://previews.example.com/2190371.m4p</string>
					<key>releaseDate</key><string>2001-06-05T07:00:00Z</string>
					<key>priceDisplay</key><string>$0.99</string>
					<key>vendorId</key><string>1143</string>
				</dict>
				<dict>
					<key>songId</key><string>2190372</string>
					<key>itemName</key><string>Pyramid Song</string>
					<key>trackNumber</key><integer>2</integer>
					<key>explicit</key><true/>
				</dict>
			</array>
		</plist>
	</TrackList>
</Document>`

func TestAlbum(t *testing.T) {
	t.Parallel()

	page, err := extract.Album(parse(t, albumPageDoc))
	require.NoError(t, err)

	assert.Equal(t, "2190361", page.ID)
	assert.Equal(t, "156989", page.ArtistID)
	assert.Equal(t, "20", page.GenreID)
	assert.Equal(t, "Amnesiac", page.Breadcrumb.Title())
	assert.Equal(t, "Alternative", page.Breadcrumb.GenreName())

	// The first ViewAlbum is structurally incomplete; the second one wins.
	require.NotNil(t, page.Cover)
	assert.Equal(t, "https://images.example.com/amnesiac.170x170.jpg", page.Cover.URL)
	assert.Equal(t, 170, page.Cover.Width)
	assert.Equal(t, 170, page.Cover.Height)

	// Resolved by artistId match, not by document position.
	assert.Equal(t, "Radiohead", page.ArtistName)

	assert.Equal(t, []string{"Release Date: June 5, 2001", "Total Songs: 11"}, page.Info)
	assert.Equal(t, []string{"The follow-up to Kid A, recorded in the same sessions."}, page.Notes)

	require.Len(t, page.Tracks, 2)
	first := page.Tracks[0]
	assert.Equal(t, "2190371", first.SongID)
	assert.Equal(t, "Packt Like Sardines in a Crushd Tin Box", first.Title)
	assert.Equal(t, "Alternative", first.GenreName)
	assert.Equal(t, 2001, first.Year)
	assert.Equal(t, 1, first.TrackNumber)
	assert.Equal(t, 11, first.TrackCount)
	assert.False(t, first.Explicit)
	assert.Equal(t, "2001 Capitol Records", first.Copyright)
	assert.Equal(t, "$0.99", first.PriceDisplay)
	assert.Equal(t, "1143", first.VendorID)
	// Alphabetic characters are stripped out of the release date string.
	assert.Equal(t, "2001-06-0507:00:00", first.ReleaseDate)

	second := page.Tracks[1]
	assert.Equal(t, "Pyramid Song", second.Title)
	assert.True(t, second.Explicit)
	assert.Zero(t, second.Year)
}

func TestAlbum_MissingNotesContainer(t *testing.T) {
	t.Parallel()

	const doc = `<Document artistId="1" playlistId="2">
		<ScrollView>
			<VBoxView>
				<TextView>one info line</TextView>
			</VBoxView>
		</ScrollView>
	</Document>`

	page, err := extract.Album(parse(t, doc))
	require.NoError(t, err)
	assert.Empty(t, page.Notes)
	assert.Equal(t, []string{"one info line"}, page.Info)
	assert.Nil(t, page.Cover)
	assert.Empty(t, page.Tracks)
}

func TestAlbum_MissingScrollView(t *testing.T) {
	t.Parallel()

	_, err := extract.Album(parse(t, `<Document playlistId="2"/>`))
	var exErr *extract.Error
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "Document/ScrollView", exErr.Path)
}
