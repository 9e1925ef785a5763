package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/printworks/platetrack/constants"
	"github.com/printworks/platetrack/internal/entity"
	"github.com/printworks/platetrack/internal/heuristic"
	"github.com/printworks/platetrack/internal/migrate"
	"github.com/printworks/platetrack/internal/validate"
)

// Service turns source files into canonical order items. Files are read
// strictly one at a time; a failing file or page never aborts its siblings.
type Service struct {
	renderer PageRenderer
	marginCm float64
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(renderer PageRenderer, marginCm float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if marginCm < 0 {
		marginCm = constants.DefaultMarginCm
	}
	return &Service{
		renderer: renderer,
		marginCm: marginCm,
		logger:   logger,
		now:      time.Now,
	}
}

// ImportFiles processes each source file in order and returns the created
// items plus an aggregate summary. Success means zero file-level failures;
// per-page validation errors are reported but do not fail the run.
func (s *Service) ImportFiles(ctx context.Context, files []SourceFile) ([]entity.OrderItem, Summary) {
	var items []entity.OrderItem
	var sum Summary

	for _, f := range files {
		ext := constants.NormalizeExt(filepath.Ext(f.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			s.logger.Debug("ingest.file.skipped", "name", f.Name(), "ext", ext)
			continue
		}
		sum.FilesProcessed++

		created, pageErrs, err := s.importFile(ctx, f)
		if err != nil {
			sum.FilesFailed++
			sum.Errors = append(sum.Errors, fmt.Sprintf("%s: %v", f.Name(), err))
			s.logger.Error("ingest.file.failed", "name", f.Name(), "error", err)
			continue
		}
		sum.Errors = append(sum.Errors, pageErrs...)
		items = append(items, created...)
		sum.Created += len(created)
		s.logger.Info("ingest.file.ok", "name", f.Name(), "items", len(created), "page_errors", len(pageErrs))
	}

	sum.Success = sum.FilesFailed == 0
	return items, sum
}

// importFile derives name facts once, then builds one item per page. A
// page whose dimensions fail the gate is recorded and skipped; the file
// itself only fails when it cannot be read or opened.
func (s *Service) importFile(ctx context.Context, f SourceFile) ([]entity.OrderItem, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := f.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	doc, err := s.renderer.Open(data)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer doc.Close()

	name := f.Name()
	jobNumber := heuristic.JobNumber(name)
	colors := heuristic.DetectColors(name)
	nameDims := heuristic.DimensionsFromName(name)
	today := s.now().UTC()

	var items []entity.OrderItem
	var pageErrs []string

	for page := 0; page < doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		// Filename metadata is authoritative operator input; geometry is
		// the last-resort estimate and bakes in the margin allowance.
		dims := nameDims
		if dims == nil {
			geo, err := doc.Page(page)
			if err != nil {
				pageErrs = append(pageErrs, fmt.Sprintf("%s page %d: geometry: %v", name, page+1, err))
				continue
			}
			d := heuristic.DimensionsFromGeometry(geo.WidthPts, geo.HeightPts, s.marginCm)
			dims = &d
		}
		if err := validate.Dimensions(dims.WidthCm, dims.HeightCm); err != nil {
			pageErrs = append(pageErrs, fmt.Sprintf("%s page %d: %v", name, page+1, err))
			continue
		}

		candidate := map[string]any{
			"job_number": jobNumber,
			"color_plan": strings.Join(colors.Tags, ", "),
			"kind":       string(constants.KindNew),
			"issue_date": today,
			"width_cm":   dims.WidthCm,
			"height_cm":  dims.HeightCm,
			"games":      colors.MinGames,
			"notes":      sourceNote(name, page, doc.PageCount()),
		}
		item, err := migrate.Migrate(candidate)
		if err != nil {
			pageErrs = append(pageErrs, fmt.Sprintf("%s page %d: %v", name, page+1, err))
			continue
		}
		items = append(items, item)
	}

	return items, pageErrs, nil
}

func sourceNote(name string, page, pageCount int) string {
	if pageCount > 1 {
		return fmt.Sprintf("imported from %s (page %d/%d)", name, page+1, pageCount)
	}
	return "imported from " + name
}
