package doclib

import (
	"time"
)

// TimeFormat is the layout providers use for TimeCreated and TimeLastModified.
const TimeFormat = "2006-01-02T15:04:05Z"

// Normalize maps provider records to FileRefs one-to-one.  The first malformed record aborts the whole call.
func Normalize(records []Record) ([]FileRef, error) {
	refs := make([]FileRef, 0, len(records))
	for i := range records {
		ref, err := normalizeRecord(i, records[i])
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// NormalizeRecord maps a single provider record to a FileRef.
func NormalizeRecord(r Record) (FileRef, error) {
	return normalizeRecord(0, r)
}

func normalizeRecord(idx int, r Record) (FileRef, error) {
	missing := func(field string) error {
		return &MalformedRecordError{Index: idx, Field: field}
	}

	switch {
	case r.Name == nil:
		return FileRef{}, missing("name")
	case r.UniqueID == nil:
		return FileRef{}, missing("unique_id")
	case r.Length == nil:
		return FileRef{}, missing("size")
	case r.TimeCreated == nil:
		return FileRef{}, missing("created_at")
	case r.TimeLastModified == nil:
		return FileRef{}, missing("modified_at")
	case r.MajorVersion == nil:
		return FileRef{}, missing("major_version")
	case r.MinorVersion == nil:
		return FileRef{}, missing("minor_version")
	}

	if *r.Length < 0 {
		return FileRef{}, &MalformedRecordError{Index: idx, Field: "size", Err: Error("negative size")}
	}

	created, err := time.Parse(TimeFormat, *r.TimeCreated)
	if err != nil {
		return FileRef{}, &MalformedRecordError{Index: idx, Field: "created_at", Err: err}
	}
	modified, err := time.Parse(TimeFormat, *r.TimeLastModified)
	if err != nil {
		return FileRef{}, &MalformedRecordError{Index: idx, Field: "modified_at", Err: err}
	}

	return FileRef{
		Name:         *r.Name,
		UniqueID:     *r.UniqueID,
		Size:         *r.Length,
		CreatedAt:    created,
		ModifiedAt:   modified,
		MajorVersion: *r.MajorVersion,
		MinorVersion: *r.MinorVersion,
	}, nil
}

// Record serializes f back into provider form.  For a FileRef produced by Normalize the result carries the same
// values as the record it came from.
func (f FileRef) Record() Record {
	return Record{
		Name:             ptr(f.Name),
		UniqueID:         ptr(f.UniqueID),
		Length:           ptr(f.Size),
		TimeCreated:      ptr(f.CreatedAt.UTC().Format(TimeFormat)),
		TimeLastModified: ptr(f.ModifiedAt.UTC().Format(TimeFormat)),
		MajorVersion:     ptr(f.MajorVersion),
		MinorVersion:     ptr(f.MinorVersion),
	}
}

// NewRecord builds a fully populated Record.  Backends use it when their SDK always reports every field.
func NewRecord(name, uniqueID string, size int64, created, modified time.Time, major, minor int) Record {
	return FileRef{
		Name:         name,
		UniqueID:     uniqueID,
		Size:         size,
		CreatedAt:    created.UTC().Truncate(time.Second),
		ModifiedAt:   modified.UTC().Truncate(time.Second),
		MajorVersion: major,
		MinorVersion: minor,
	}.Record()
}

func ptr[T any](v T) *T {
	return &v
}
