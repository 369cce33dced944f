package services

import (
	"github.com/pagekit-dev/pagekit/internal/application/dto"
	"github.com/pagekit-dev/pagekit/internal/domain/services"
)

// Report snapshots everything the block resolves to. A missing view is
// recorded in the report rather than returned.
func (b *ThemeBlock) Report() dto.BlockReport {
	kind := b.Kind()
	report := dto.BlockReport{
		Slug:                 b.Slug(),
		Folder:               b.Folder(),
		Kind:                 string(kind.Variant),
		ControllerFile:       b.ControllerFile(),
		ModelFile:            b.ModelFile(),
		ControllerOverridden: b.HasOwnController(),
		ModelOverridden:      b.HasOwnModel(),
		ConfigFile:           b.ConfigFile(),
		Config:               b.Config(),
	}
	if schema, ok := b.SchemaFile(); ok {
		report.SchemaFile = schema
	}

	view, err := b.ViewFile()
	report.ViewFile = view
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.ViewExists = true

	key, err := b.ThumbKey()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.ThumbKey = &key

	if path, err := b.ThumbPath(); err == nil {
		report.ThumbPath = path
	}
	if b.assets != nil {
		if url, err := b.ThumbURL(); err == nil {
			report.ThumbURL = url
		}
	}

	return report
}

// blockEnv exposes a report to filter expressions.
func blockEnv(r dto.BlockReport) services.BlockEnv {
	return services.BlockEnv{
		Config:        r.Config,
		Slug:          r.Slug,
		Kind:          r.Kind,
		Error:         r.Error,
		HasController: r.ControllerOverridden,
		HasModel:      r.ModelOverridden,
		HasView:       r.ViewExists,
	}
}
