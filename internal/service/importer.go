package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"meterflow/internal/d0010"
	"meterflow/internal/model"
	"meterflow/internal/repository"
	"meterflow/internal/storage"
)

var ErrFilenameRequired = errors.New("filename is required")

// ImportResult reports what one flow-file import did. In a dry run only
// Filename, FileReference, ParsedCount, and DryRun are meaningful.
type ImportResult struct {
	Filename      string `json:"filename"`
	FileReference string `json:"file_reference,omitempty"`
	FlowFileID    int64  `json:"flow_file_id,omitempty"`
	ParsedCount   int    `json:"parsed_count"`
	ImportedCount int    `json:"imported_count"`
	SkippedCount  int    `json:"skipped_count"`
	DryRun        bool   `json:"dry_run,omitempty"`
}

// FileResult pairs one batch entry with its outcome. Err is nil on
// success.
type FileResult struct {
	Path   string
	Result *ImportResult
	Err    error
}

// ImportService defines the use cases for loading D0010 flow files.
type ImportService interface {
	// ImportFile imports the flow file at path. The basename is the
	// duplicate-detection key.
	ImportFile(ctx context.Context, path string, dryRun bool) (*ImportResult, error)

	// ImportReader imports flow-file content from r under the given
	// filename. With dryRun set the file is parsed and validated but
	// nothing is persisted.
	ImportReader(ctx context.Context, r io.Reader, filename string, dryRun bool) (*ImportResult, error)

	// ImportFiles imports each path in order. One file's failure never
	// aborts the rest of the batch; every outcome is reported.
	ImportFiles(ctx context.Context, paths []string, dryRun bool) []FileResult
}

// importService is a concrete implementation of ImportService.
type importService struct {
	store   repository.ImportStore
	archive storage.Archive
	metrics *ImportMetrics
	logger  zerolog.Logger
}

// NewImportService constructs a new ImportService. archive and metrics
// may be nil; archiving and instrumentation are then skipped.
func NewImportService(store repository.ImportStore, archive storage.Archive, metrics *ImportMetrics, logger zerolog.Logger) ImportService {
	return &importService{store: store, archive: archive, metrics: metrics, logger: logger}
}

func (s *importService) ImportFile(ctx context.Context, path string, dryRun bool) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flow file: %w", err)
	}
	defer f.Close()

	return s.ImportReader(ctx, f, filepath.Base(path), dryRun)
}

func (s *importService) ImportReader(ctx context.Context, r io.Reader, filename string, dryRun bool) (*ImportResult, error) {
	result, err := s.importReader(ctx, r, filename, dryRun)
	if err != nil {
		kind := d0010.KindOf(err)
		s.metrics.importFailed(kind.String())
		if d0010.IsDuplicateFile(err) {
			s.logger.Warn().Str("filename", filename).Msg("flow file already imported")
		} else {
			s.logger.Error().Err(err).Str("filename", filename).Str("kind", kind.String()).
				Msg("flow file import failed")
		}
		return nil, err
	}

	if dryRun {
		s.logger.Info().Str("filename", filename).Int("parsed", result.ParsedCount).
			Msg("flow file validated, nothing persisted")
		return result, nil
	}

	s.metrics.importSucceeded(result.ImportedCount, result.SkippedCount)
	s.logger.Info().
		Str("filename", filename).
		Str("file_reference", result.FileReference).
		Int("imported", result.ImportedCount).
		Int("skipped", result.SkippedCount).
		Msg("flow file imported")
	return result, nil
}

func (s *importService) ImportFiles(ctx context.Context, paths []string, dryRun bool) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, p := range paths {
		res, err := s.ImportFile(ctx, p, dryRun)
		results = append(results, FileResult{Path: p, Result: res, Err: err})
	}
	return results
}

// importReader runs the import pipeline: duplicate check, full parse,
// then a single transaction that persists everything or nothing.
func (s *importService) importReader(ctx context.Context, r io.Reader, filename string, dryRun bool) (*ImportResult, error) {
	if filename == "" {
		return nil, ErrFilenameRequired
	}

	exists, err := s.store.FlowFileExists(ctx, filename)
	if err != nil {
		return nil, d0010.NewPersistenceError(filename, err)
	}
	if exists {
		return nil, d0010.NewDuplicateFileError(filename)
	}

	// Capture the raw bytes while parsing so the original file can be
	// archived after commit.
	var raw bytes.Buffer
	if s.archive != nil && !dryRun {
		r = io.TeeReader(r, &raw)
	}

	file, err := d0010.Parse(r, filename)
	if err != nil {
		return nil, err
	}
	s.checkTrailer(file)

	result := &ImportResult{
		Filename:      filename,
		FileReference: file.FileReference(),
		ParsedCount:   len(file.Readings),
		DryRun:        dryRun,
	}
	if dryRun {
		return result, nil
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, d0010.NewPersistenceError(filename, err)
	}
	defer tx.Rollback()

	ff := &model.FlowFile{Filename: filename, FileReference: file.FileReference()}
	if err := tx.CreateFlowFile(ctx, ff); err != nil {
		if errors.Is(err, repository.ErrDuplicateFlowFile) {
			return nil, d0010.NewDuplicateFileError(filename)
		}
		return nil, d0010.NewPersistenceError(filename, err)
	}

	for i := range file.Readings {
		rd := &file.Readings[i]

		mp, err := tx.GetOrCreateMeterPoint(ctx, rd.MPAN)
		if err != nil {
			return nil, d0010.NewPersistenceError(filename, err)
		}
		m, err := tx.GetOrCreateMeter(ctx, mp.ID, rd.MeterSerial, rd.MeterType)
		if err != nil {
			return nil, d0010.NewPersistenceError(filename, err)
		}

		created, err := tx.GetOrCreateReading(ctx, &model.Reading{
			MeterID:      m.ID,
			FlowFileID:   ff.ID,
			RegisterID:   rd.RegisterID,
			ReadingDate:  rd.ReadingDate,
			ReadingValue: rd.Value,
			ReadingType:  model.ReadingTypeActual,
		})
		if err != nil {
			return nil, d0010.NewPersistenceError(filename, err)
		}
		if created {
			result.ImportedCount++
		} else {
			result.SkippedCount++
		}
	}

	// The provenance row records how many readings this file actually
	// contributed, not how many it contained.
	if err := tx.FinalizeFlowFile(ctx, ff.ID, result.ImportedCount); err != nil {
		return nil, d0010.NewPersistenceError(filename, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, d0010.NewPersistenceError(filename, err)
	}
	result.FlowFileID = ff.ID

	s.archiveFile(ctx, filename, &raw, file)
	return result, nil
}

// checkTrailer compares the trailer's declared group count with what was
// parsed. The count covers more than reading records, so a mismatch is
// reported but never fatal.
func (s *importService) checkTrailer(file *d0010.File) {
	if file.Trailer == nil || file.Trailer.DeclaredCount == 0 {
		return
	}
	if file.Trailer.DeclaredCount != len(file.Readings) {
		s.logger.Debug().
			Str("filename", file.Filename).
			Int("declared", file.Trailer.DeclaredCount).
			Int("parsed", len(file.Readings)).
			Msg("trailer count differs from parsed readings")
	}
}

// archiveFile stores the original bytes best-effort. The import has
// already committed; archive failures are logged and swallowed.
func (s *importService) archiveFile(ctx context.Context, filename string, raw *bytes.Buffer, file *d0010.File) {
	if s.archive == nil {
		return
	}

	metadata := map[string]string{}
	if ref := file.FileReference(); ref != "" {
		metadata["file-reference"] = ref
	}
	if _, err := s.archive.Store(ctx, filename, raw, int64(raw.Len()), metadata); err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("failed to archive flow file")
		return
	}
	s.logger.Debug().Str("filename", filename).Msg("flow file archived")
}
