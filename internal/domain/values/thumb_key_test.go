package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HashHex(t *testing.T) {
	// Well-known md5 digests.
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", HashHex(nil))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", HashHex([]byte("hello")))
}

func Test_NewThumbKey(t *testing.T) {
	slug := MustNewBlockSlug("hero")

	k1 := NewThumbKey(slug, []byte("<h1>Hi</h1>"))
	k2 := NewThumbKey(slug, []byte("<h1>Hi</h1>"))
	k3 := NewThumbKey(slug, []byte("<h1>Hello</h1>"))

	assert.Equal(t, k1, k2)
	assert.Equal(t, k1.BlockHash, k3.BlockHash)
	assert.NotEqual(t, k1.ContentHash, k3.ContentHash)
	assert.Equal(t, HashHex([]byte("hero")), k1.BlockHash)
	assert.False(t, k1.IsZero())
	assert.True(t, ThumbKey{}.IsZero())
}

func Test_ThumbKey_Paths(t *testing.T) {
	k := ThumbKey{BlockHash: "aaa", ContentHash: "bbb"}

	assert.Equal(t, "bbb.jpg", k.FileName(".jpg"))
	assert.Equal(t, "block-thumbs/aaa/bbb.jpg", k.RelativePath("block-thumbs", ".jpg"))
	assert.Equal(t, "aaa/bbb", k.String())
}

func Test_NewThumbKey_HashesSlugAsSupplied(t *testing.T) {
	padded := NewThumbKey(MustNewBlockSlug(" hero "), []byte("x"))
	plain := NewThumbKey(MustNewBlockSlug("hero"), []byte("x"))

	assert.Equal(t, HashHex([]byte(" hero ")), padded.BlockHash)
	assert.NotEqual(t, plain.BlockHash, padded.BlockHash)
}
