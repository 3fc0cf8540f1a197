package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func TestDecodeImageDataURI(t *testing.T) {
	uri := pngDataURI(t)

	img, err := DecodeImageDataURI(uri)
	require.NoError(t, err)
	require.Equal(t, "png", img.Format)
	require.Equal(t, "png", img.Ext)

	bare, err := DecodeImageDataURI(uri[len("data:image/png;base64,"):])
	require.NoError(t, err)
	require.Equal(t, img.Data, bare.Data)

	for _, raw := range []string{
		"",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/png;base64,%%%",
		"data:image/png;base64,bm90IGFuIGltYWdl",
	} {
		_, err := DecodeImageDataURI(raw)
		e, ok := domainagg.As(err)
		require.True(t, ok, "input %q: %v", raw, err)
		require.NotEmpty(t, e.Fields["image"], "input %q", raw)
	}
}
