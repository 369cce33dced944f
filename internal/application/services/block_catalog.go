package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pagekit-dev/pagekit/internal/application/dto"
	apperrors "github.com/pagekit-dev/pagekit/internal/application/errors"
	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/pagekit-dev/pagekit/internal/domain/services"
	"golang.org/x/sync/errgroup"
)

// BlockCatalog inspects single blocks and lists all blocks of a theme.
type BlockCatalog struct {
	factory  *BlockFactory
	redactor ports.ConfigRedactor
	logger   *slog.Logger
}

// NewBlockCatalog creates a new block catalog.
func NewBlockCatalog(factory *BlockFactory, logger *slog.Logger) *BlockCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlockCatalog{
		factory: factory,
		logger:  logger,
	}
}

// WithRedactor masks config values in every report the catalog returns.
// Filters still see the unredacted config.
func (c *BlockCatalog) WithRedactor(r ports.ConfigRedactor) *BlockCatalog {
	c.redactor = r
	return c
}

// Inspect resolves one block. Unlike List, a config load failure is returned.
func (c *BlockCatalog) Inspect(ctx context.Context, theme ports.PublicTheme, slug string) (*dto.BlockReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	block, err := c.factory.New(theme, theme, slug)
	if err != nil {
		return nil, err
	}

	report := block.Report()
	c.redact(&report)
	return &report, nil
}

// List resolves every folder under <themeRoot>/blocks concurrently.
// A block whose config fails to load is reported with its error and the
// listing continues.
func (c *BlockCatalog) List(ctx context.Context, theme ports.PublicTheme, req dto.ListBlocksRequest) (*dto.CatalogReport, error) {
	start := time.Now()

	requestID := req.Metadata.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	filter, err := buildBlockFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	blocksDir := filepath.Join(theme.RootFolder(), BlocksDir)
	slugs, err := c.factory.Deps().FS.ListDirs(blocksDir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("theme", fmt.Sprintf("cannot list %s", blocksDir), err)
	}

	c.logger.Debug("listing blocks", "request_id", requestID, "theme", theme.RootFolder(), "count", len(slugs))

	limit := req.MaxConcurrent
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	reports := make([]dto.BlockReport, len(slugs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, slug := range slugs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = c.reportFor(theme, slug)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := &dto.CatalogReport{
		ThemeRoot: theme.RootFolder(),
		Blocks:    make([]dto.BlockReport, 0, len(reports)),
	}

	for _, r := range reports {
		if ok, reason := filter.Matches(blockEnv(r)); !ok {
			c.logger.Debug("block skipped", "slug", r.Slug, "reason", reason)
			catalog.Summary.Skipped++
			continue
		}
		c.redact(&r)
		catalog.Blocks = append(catalog.Blocks, r)
		catalog.Summary.Total++
		switch {
		case r.Error != "":
			catalog.Summary.Errors++
		case r.Kind == string(services.ViewDynamic):
			catalog.Summary.Dynamic++
		default:
			catalog.Summary.Static++
		}
	}

	sort.Slice(catalog.Blocks, func(i, j int) bool {
		return catalog.Blocks[i].Slug < catalog.Blocks[j].Slug
	})

	catalog.Metadata = dto.ResponseMetadata{
		RequestID:   requestID,
		ProcessedAt: start,
		Duration:    time.Since(start),
	}

	return catalog, nil
}

func (c *BlockCatalog) reportFor(theme ports.PublicTheme, slug string) dto.BlockReport {
	block, err := c.factory.New(theme, theme, slug)
	if err != nil {
		c.logger.Warn("block failed to load", "slug", slug, "error", err)
		return dto.BlockReport{
			Slug:   slug,
			Folder: filepath.Join(theme.RootFolder(), BlocksDir, slug),
			Error:  err.Error(),
		}
	}
	return block.Report()
}

func (c *BlockCatalog) redact(r *dto.BlockReport) {
	if c.redactor != nil && r.Config != nil {
		r.Config = c.redactor.RedactConfig(r.Config)
	}
}

func buildBlockFilter(opts dto.FilterOptions) (*services.BlockFilter, error) {
	filter := services.NewBlockFilter()

	for _, kind := range opts.Kinds {
		switch services.ViewVariant(kind) {
		case services.ViewDynamic, services.ViewStatic:
		default:
			return nil, apperrors.NewValidationError("kind",
				fmt.Sprintf("unknown block kind %q", kind),
				"valid kinds: "+strings.Join([]string{string(services.ViewDynamic), string(services.ViewStatic)}, ", "))
		}
	}
	filter.WithKinds(opts.Kinds)

	if opts.FilterExpression != "" {
		program, err := services.CompileBlockFilter(opts.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", err.Error())
		}
		filter.WithFilterExpression(program)
	}

	return filter, nil
}
