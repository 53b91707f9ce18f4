package viewml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/itms/iterutil"
	"github.com/xeptore/itms/itunes/viewml"
)

const fixture = `<?xml version="1.0" encoding="utf-8"?>
<Document artistId="156989">
	<Path>
		<PathElement displayName="Alternative"> https://store.example.com/viewGenre?genreId=20 </PathElement>
		<PathElement displayName="Radiohead">https://store.example.com/viewArtist?id=156989</PathElement>
	</Path>
	<ScrollView>
		<VBoxView>
			<TextView>first</TextView>
			<HBoxView/>
			<TextView>second</TextView>
		</VBoxView>
		<VBoxView>
			<TextView>third</TextView>
		</VBoxView>
	</ScrollView>
</Document>`

func TestParse(t *testing.T) {
	t.Parallel()

	root, err := viewml.Parse([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, "Document", root.Tag)

	id, ok := root.Attr("artistId")
	require.True(t, ok)
	assert.Equal(t, "156989", id)

	_, ok = root.Attr("genreId")
	assert.False(t, ok)
}

func TestParse_NoRoot(t *testing.T) {
	t.Parallel()

	_, err := viewml.Parse([]byte("   "))
	require.Error(t, err)
}

func TestChildQueries(t *testing.T) {
	t.Parallel()

	root, err := viewml.Parse([]byte(fixture))
	require.NoError(t, err)

	path := root.FirstChild("Path")
	require.NotNil(t, path)

	elems := path.ChildrenOf("PathElement")
	require.Len(t, elems, 2)

	name, ok := elems[0].Attr("displayName")
	require.True(t, ok)
	assert.Equal(t, "Alternative", name)
	assert.Equal(t, "https://store.example.com/viewGenre?genreId=20", elems[0].Text())

	last := path.LastChild("PathElement")
	require.NotNil(t, last)
	name, _ = last.Attr("displayName")
	assert.Equal(t, "Radiohead", name)

	assert.Nil(t, root.FirstChild("TrackList"))
}

func TestDescendantsOrderAndRestart(t *testing.T) {
	t.Parallel()

	root, err := viewml.Parse([]byte(fixture))
	require.NoError(t, err)

	texts := func() []string {
		var out []string
		for n := range root.Descendants("TextView") {
			out = append(out, n.Text())
		}
		return out
	}

	assert.Equal(t, []string{"first", "second", "third"}, texts())
	// Restarts from the beginning on every range.
	assert.Equal(t, []string{"first", "second", "third"}, texts())

	for i, n := range iterutil.WithIndex(root.Descendants("TextView")) {
		if i == 0 {
			assert.Equal(t, "first", n.Text())
			break
		}
	}
}

func TestSiblings(t *testing.T) {
	t.Parallel()

	root, err := viewml.Parse([]byte(fixture))
	require.NoError(t, err)

	scroll := root.FirstChild("ScrollView")
	require.NotNil(t, scroll)
	box := scroll.FirstChild("VBoxView")
	require.NotNil(t, box)

	first := box.FirstChild("TextView")
	require.NotNil(t, first)

	next := first.NextSibling("")
	require.NotNil(t, next)
	assert.Equal(t, "HBoxView", next.Tag)

	next = first.NextSibling("TextView")
	require.NotNil(t, next)
	assert.Equal(t, "second", next.Text())

	rest := iterutil.Collect(first.NextSiblings("TextView"))
	require.Len(t, rest, 1)
	assert.Equal(t, "second", rest[0].Text())

	assert.Nil(t, root.NextSibling(""))
}
