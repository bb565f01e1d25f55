package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/target/aircraft-catalog/internal/catalog"
	"github.com/target/aircraft-catalog/internal/domain/model"
)

// AltitudeChange is one estimated cruise altitude.
type AltitudeChange struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Altitude float64 `json:"altitude"`
}

// EstimateAltitudes fills missing cruise altitudes. With dryRun set nothing
// is written.
func (s *ImportService) EstimateAltitudes(ctx context.Context, dryRun bool) ([]AltitudeChange, error) {
	rows, err := s.aircraft.repo.List(ctx, model.AircraftListOptions{})
	if err != nil {
		return nil, fmt.Errorf("estimate altitudes: %w", err)
	}

	var changes []AltitudeChange
	for _, a := range rows {
		if a.CruiseAltitude != nil && *a.CruiseAltitude > 0 {
			continue
		}
		alt := catalog.EstimateCruiseAltitude(catalog.ProfileOfAircraft(a))
		changes = append(changes, AltitudeChange{ID: a.ID, Name: a.Name, Altitude: alt})
		if dryRun {
			continue
		}
		if _, err := s.aircraft.repo.Update(ctx, a.ID, model.AircraftPatch{CruiseAltitude: &alt}); err != nil {
			return changes, fmt.Errorf("update altitude of %q: %w", a.Name, err)
		}
	}
	if !dryRun && len(changes) > 0 {
		s.aircraft.Invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "cruise altitudes estimated", "count", len(changes), "dry_run", dryRun)
	return changes, nil
}

// RangeReport lists the names whose range was set and the names with no
// stored record.
type RangeReport struct {
	Updated []string `json:"updated"`
	Missing []string `json:"missing"`
}

// ApplyRanges stores each update's range on every record with that name.
// Later updates for the same name win.
func (s *ImportService) ApplyRanges(ctx context.Context, updates []catalog.RangeUpdate) (*RangeReport, error) {
	ranges := make(map[string]float64, len(updates))
	for _, u := range updates {
		ranges[u.Name] = u.RangeKM
	}
	missing, err := s.aircraft.repo.SetRanges(ctx, ranges)
	if err != nil {
		return nil, fmt.Errorf("apply ranges: %w", err)
	}

	absent := make(map[string]bool, len(missing))
	for _, name := range missing {
		absent[name] = true
	}
	report := &RangeReport{Updated: []string{}, Missing: missing}
	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if absent[u.Name] || seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		report.Updated = append(report.Updated, u.Name)
	}
	if report.Missing == nil {
		report.Missing = []string{}
	}
	if len(report.Updated) > 0 {
		s.aircraft.Invalidate(ctx)
	}
	return report, nil
}

// Duplicates reports records sharing a name or a manufacturer and model.
func (s *ImportService) Duplicates(ctx context.Context) ([]catalog.DuplicateGroup, error) {
	rows, err := s.aircraft.repo.List(ctx, model.AircraftListOptions{})
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}
	recs := make([]model.Aircraft, 0, len(rows))
	for _, a := range rows {
		recs = append(recs, *a)
	}
	return catalog.FindDuplicates(recs), nil
}

// ImagePathReport counts the outcome of ApplyImagePaths.
type ImagePathReport struct {
	Updated   int `json:"updated"`
	Fallback  int `json:"fallback"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// ImagePath joins the public URL prefix and an image's path relative to the
// download directory, e.g. "/images/" + "aircraft/1_A320.jpg".
func ImagePath(prefix, localPath string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(localPath, "/")
}

// ApplyImagePaths points each record's image_url at its downloaded copy, or
// at its category fallback image, under prefix. Records with no image on disk
// are skipped.
func (s *ImportService) ApplyImagePaths(ctx context.Context, records []model.ImageRecord, prefix string) (*ImagePathReport, error) {
	report := &ImagePathReport{}
	for _, rec := range records {
		if rec.LocalPath == "" {
			report.Skipped++
			continue
		}
		target := ImagePath(prefix, rec.LocalPath)
		if target == rec.OriginalURL {
			report.Unchanged++
			continue
		}
		if _, err := s.aircraft.repo.Update(ctx, rec.ID, model.AircraftPatch{ImageURL: &target}); err != nil {
			return report, fmt.Errorf("update image of %q: %w", rec.Name, err)
		}
		report.Updated++
		if rec.UsedFallback {
			report.Fallback++
		}
	}
	if report.Updated > 0 {
		s.aircraft.Invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "image paths applied",
		"updated", report.Updated, "fallback", report.Fallback, "skipped", report.Skipped)
	return report, nil
}
