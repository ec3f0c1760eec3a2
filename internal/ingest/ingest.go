// Package ingest reads uploaded export archives into domain record sets.
//
// An export is a zip archive of CSV files, one file per category
// (diary.csv, watched.csv, ratings.csv, reviews.csv, likes/films.csv).
// The first row of each file is the header; every following row becomes
// one Record keyed by those headers. Ragged rows are tolerated: short
// rows leave the trailing columns empty, long rows drop the overflow.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"path"
	"strings"

	"github.com/screendapp/screend-server/internal/domain"
	domainerrors "github.com/screendapp/screend-server/internal/errors"
)

// ReadArchive parses a zip export into an Export. Entries that are not
// CSV files are ignored, as are macOS resource-fork entries. A corrupt
// or non-zip payload yields a validation error.
func ReadArchive(r io.ReaderAt, size int64) (domain.Export, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return domain.Export{}, domainerrors.Validation("upload is not a valid zip archive").WithCause(err)
	}

	sets := make(map[string]domain.RecordSet)
	for _, f := range zr.File {
		name := normalizeEntryName(f.Name)
		if name == "" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return domain.Export{}, domainerrors.Validationf("cannot read archive entry %q", f.Name).WithCause(err)
		}
		rs, err := ReadCSV(rc)
		rc.Close()
		if err != nil {
			return domain.Export{}, domainerrors.Validationf("cannot parse %q", f.Name).WithCause(err)
		}
		sets[name] = rs
	}

	export := domain.BuildExport(sets)
	if export.Diary == nil && export.Watched == nil {
		return domain.Export{}, domainerrors.Validation("archive contains no diary or watched data")
	}
	return export, nil
}

// ReadArchiveBytes is ReadArchive over an in-memory payload.
func ReadArchiveBytes(data []byte) (domain.Export, error) {
	return ReadArchive(bytes.NewReader(data), int64(len(data)))
}

// normalizeEntryName returns the category name for a zip entry, or ""
// for entries that are not export CSV files. The category keeps any
// directory prefix because liked films live under likes/films.csv.
func normalizeEntryName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(name, "__MACOSX/") {
		return ""
	}
	if base := path.Base(name); strings.HasPrefix(base, ".") {
		return ""
	}
	if !strings.EqualFold(path.Ext(name), ".csv") {
		return ""
	}
	return name[:len(name)-len(".csv")]
}

// ReadCSV parses one category file. Empty lines are skipped, and rows
// are mapped onto the header of the first line. A file with only a
// header (or nothing at all) yields an empty record set.
func ReadCSV(r io.Reader) (domain.RecordSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return domain.RecordSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(stripBOM(h))
	}

	rs := domain.RecordSet{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isEmptyRow(row) {
			continue
		}
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		rs = append(rs, rec)
	}
	return rs, nil
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
