package values

import (
	"crypto/md5" //nolint:gosec // G501: used for cache partitioning only
	"encoding/hex"
	"path"
)

// ThumbKey is the two-level, content-addressed cache key of a block thumbnail.
// BlockHash selects the block type's bucket; ContentHash selects the version
// of the view source the thumbnail was rendered from.
type ThumbKey struct {
	BlockHash   string `json:"block_hash" yaml:"block_hash"`
	ContentHash string `json:"content_hash" yaml:"content_hash"`
}

// NewThumbKey derives the key from a block slug and the bytes of its view file.
func NewThumbKey(slug BlockSlug, viewContents []byte) ThumbKey {
	return ThumbKey{
		BlockHash:   HashHex([]byte(slug.String())),
		ContentHash: HashHex(viewContents),
	}
}

// HashHex returns the hex encoded 128-bit digest of data.
func HashHex(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec // G401: not security sensitive
	return hex.EncodeToString(sum[:])
}

// FileName returns "<ContentHash><ext>".
func (k ThumbKey) FileName(ext string) string {
	return k.ContentHash + ext
}

// RelativePath returns "<BlockHash>/<ContentHash><ext>" joined onto dir.
func (k ThumbKey) RelativePath(dir, ext string) string {
	return path.Join(dir, k.BlockHash, k.FileName(ext))
}

// IsZero returns true if no key has been derived.
func (k ThumbKey) IsZero() bool {
	return k.BlockHash == "" && k.ContentHash == ""
}

// String returns "<BlockHash>/<ContentHash>".
func (k ThumbKey) String() string {
	return k.BlockHash + "/" + k.ContentHash
}
