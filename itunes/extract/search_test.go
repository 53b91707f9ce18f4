package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/itms/itunes/extract"
)

const searchPageDoc = `<?xml version="1.0" encoding="utf-8"?>
<Document>
	<ScrollView>
		<MatrixView>
			<HBoxView>
				<VBoxView>
					<ViewAlbum id="2190361" draggingName="Amnesiac">
						<PictureView url="https://images.example.com/amnesiac.65x65.jpg" width="65" height="65"/>
					</ViewAlbum>
					<ViewArtist id="156989">Radiohead</ViewArtist>
					<ViewGenre id="20">Genre: Alternative</ViewGenre>
				</VBoxView>
				<VBoxView>
					<ViewAlbum id="78113" draggingName="Amnesia">
						<PictureView url="https://images.example.com/amnesia.65x65.jpg" width="65" height="65"/>
					</ViewAlbum>
					<ViewArtist id="79103" draggingName="Chumbawamba"/>
				</VBoxView>
			</HBoxView>
		</MatrixView>
	</ScrollView>
</Document>`

func TestSearch(t *testing.T) {
	t.Parallel()

	tiles, err := extract.Search(parse(t, searchPageDoc))
	require.NoError(t, err)
	require.Len(t, tiles, 2)

	first := tiles[0]
	assert.Equal(t, "2190361", first.ID)
	assert.Equal(t, "Amnesiac", first.Title)
	require.NotNil(t, first.Thumb)
	assert.Equal(t, "https://images.example.com/amnesiac.65x65.jpg", first.Thumb.URL)
	assert.Equal(t, "156989", first.ArtistID)
	assert.Equal(t, "Radiohead", first.ArtistName)
	assert.Equal(t, "20", first.GenreID)
	// The literal "Genre: " label prefix is stripped.
	assert.Equal(t, "Alternative", first.GenreName)

	second := tiles[1]
	assert.Equal(t, "Chumbawamba", second.ArtistName)
	assert.Empty(t, second.GenreID)
	assert.Empty(t, second.GenreName)
}

func TestSearch_MissingScrollView(t *testing.T) {
	t.Parallel()

	_, err := extract.Search(parse(t, `<Document/>`))
	var exErr *extract.Error
	require.ErrorAs(t, err, &exErr)
}

func TestSearch_EmptyGrid(t *testing.T) {
	t.Parallel()

	tiles, err := extract.Search(parse(t, `<Document><ScrollView/></Document>`))
	require.NoError(t, err)
	assert.Empty(t, tiles)
}
