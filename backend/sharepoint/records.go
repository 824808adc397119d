package sharepoint

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/c2fo/doclib"
)

const fileFields = "Name,UniqueId,Length,TimeCreated,TimeLastModified,MajorVersion,MinorVersion,ServerRelativeUrl"

// parseRecord reads a SharePoint file resource.  Absent fields are left nil for the normalizer to report.
func parseRecord(file gjson.Result) doclib.Record {
	var r doclib.Record
	if v := file.Get("Name"); v.Exists() {
		r.Name = ptr(v.String())
	}
	if v := file.Get("UniqueId"); v.Exists() {
		r.UniqueID = ptr(v.String())
	}
	if v := file.Get("Length"); v.Exists() {
		// Length is an Edm.Int64, serialized as a string
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			r.Length = &n
		}
	}
	if v := file.Get("TimeCreated"); v.Exists() {
		r.TimeCreated = ptr(v.String())
	}
	if v := file.Get("TimeLastModified"); v.Exists() {
		r.TimeLastModified = ptr(v.String())
	}
	if v := file.Get("MajorVersion"); v.Exists() {
		r.MajorVersion = ptr(int(v.Int()))
	}
	if v := file.Get("MinorVersion"); v.Exists() {
		r.MinorVersion = ptr(int(v.Int()))
	}
	return r
}

func parseReceipt(file gjson.Result, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     file.Get("ServerRelativeUrl").String(),
		UniqueID: file.Get("UniqueId").String(),
		Size:     file.Get("Length").Int(),
		Chunks:   chunks,
	}
}

// parseListItem keeps every field of the item; ID and Title are also lifted out.
func parseListItem(item gjson.Result) doclib.ListItem {
	fields, _ := item.Value().(map[string]any)
	return doclib.ListItem{
		ID:     item.Get("ID").String(),
		Title:  item.Get("Title").String(),
		Fields: fields,
	}
}

func ptr[T any](v T) *T {
	return &v
}
