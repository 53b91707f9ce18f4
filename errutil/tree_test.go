package errutil_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/itms/errutil"
)

func TestTree(t *testing.T) {
	t.Parallel()

	t.Run("leaf", func(t *testing.T) {
		info := errutil.Tree(io.ErrUnexpectedEOF)
		assert.Equal(t, "unexpected EOF", info.Message)
		assert.Equal(t, "*errors.errorString", info.TypeName)
		assert.Empty(t, info.Children)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", io.EOF))
		info := errutil.Tree(err)
		assert.Equal(t, "outer: inner: EOF", info.Message)
		require.Len(t, info.Children, 1)
		require.Len(t, info.Children[0].Children, 1)
		assert.Equal(t, "EOF", info.Children[0].Children[0].Message)
	})

	t.Run("joined", func(t *testing.T) {
		err := errors.Join(io.EOF, io.ErrClosedPipe)
		info := errutil.Tree(err)
		require.Len(t, info.Children, 2)
		assert.Equal(t, "EOF", info.Children[0].Message)
		assert.Equal(t, "io: read/write on closed pipe", info.Children[1].Message)
	})

	t.Run("flaw_p_carries_children", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", io.EOF)
		p := errutil.Tree(err).FlawP()
		assert.Equal(t, "outer: EOF", p["message"])
		children, ok := p["children"].([]flaw.P)
		require.True(t, ok)
		require.Len(t, children, 1)
		assert.Equal(t, "EOF", children[0]["message"])
	})
}

func TestIsAny(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("fetch: %w", io.EOF)

	matched, ok := errutil.IsAny(wrapped, io.ErrClosedPipe, io.EOF)
	require.True(t, ok)
	assert.Equal(t, io.EOF, matched)

	_, ok = errutil.IsAny(wrapped, io.ErrClosedPipe, io.ErrShortWrite)
	assert.False(t, ok)
}

func TestUnknownError(t *testing.T) {
	t.Parallel()

	msg := errutil.UnknownError(io.EOF)
	assert.Equal(t, "unknown error of type *errors.errorString received: EOF", msg)
}

func TestIsContext(t *testing.T) {
	t.Parallel()

	assert.False(t, errutil.IsContext(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errutil.IsContext(ctx))
}
