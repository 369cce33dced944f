package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewBlockSlug(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRaw    string
		wantFolder string
		wantErr    bool
	}{
		{"plain", "hero", "hero", "hero", false},
		{"keeps surrounding whitespace", "  hero  ", "  hero  ", "  hero  ", false},
		{"traversal", "../../etc", "../../etc", "etc", false},
		{"absolute path", "/var/www/hero", "/var/www/hero", "hero", false},
		{"backslash traversal", `..\..\secret`, `..\..\secret`, "secret", false},
		{"trailing slash", "hero/", "hero/", "hero", false},
		{"empty", "", "", "", true},
		{"whitespace only", "   ", "", "", true},
		{"dot", ".", "", "", true},
		{"dot dot", "..", "", "", true},
		{"parent with slash", "a/..", "", "", true},
		{"root", "/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, err := NewBlockSlug(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSlug)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRaw, slug.String())
			assert.Equal(t, tt.wantFolder, slug.FolderName())
		})
	}
}

func Test_MustNewBlockSlug_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewBlockSlug("")
	})
}

func Test_BlockSlug_IsEmptyAndEquals(t *testing.T) {
	assert.True(t, BlockSlug{}.IsEmpty())

	a := MustNewBlockSlug("hero")
	b := MustNewBlockSlug("hero")
	c := MustNewBlockSlug("footer")
	assert.False(t, a.IsEmpty())
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func Test_BlockSlug_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(MustNewBlockSlug(`say "hi"`))
	require.NoError(t, err)
	assert.Equal(t, `"say \"hi\""`, string(data))
}
