package services

import (
	"context"
	"errors"

	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/pagekit-dev/pagekit/internal/domain/entities"
	"github.com/pagekit-dev/pagekit/internal/domain/values"
)

// WatchThumbKey calls onChange with the block's thumbnail key once at start
// and again whenever an edit to a view file changes it. It blocks until ctx
// is cancelled or the watcher fails.
func (b *ThemeBlock) WatchThumbKey(ctx context.Context, watcher ports.FileWatcher, onChange func(values.ThumbKey)) error {
	var last values.ThumbKey

	emit := func() {
		key, err := b.ThumbKey()
		if err != nil {
			var missing *entities.MissingViewError
			if !errors.As(err, &missing) {
				b.deps.Logger.Warn("failed to derive thumbnail key", "slug", b.Slug(), "error", err)
			}
			return
		}
		if key == last {
			return
		}
		last = key
		onChange(key)
	}

	emit()

	names := []string{b.deps.Layout.DynamicView, b.deps.Layout.StaticView}
	return watcher.Watch(ctx, b.Folder(), names, func(path string) {
		b.deps.Logger.Debug("view changed", "slug", b.Slug(), "path", path)
		emit()
	})
}
