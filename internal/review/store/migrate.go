package store

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/revpoint/internal/review"
)

// legacyKey marks records written before the format field existed.
const legacyKey = "rp_list"

// IsLegacy reports whether data is a record in the legacy rp_list layout.
func IsLegacy(data []byte) bool {
	return !gjson.GetBytes(data, "format").Exists() && gjson.GetBytes(data, legacyKey).Exists()
}

// Migrate upgrades a legacy record to the current format. It returns data
// unchanged and false when no migration is needed.
//
// Legacy ranges are either [start, end] arrays or {start, end} objects of
// {line, character} pairs. Missing ids are generated and missing versions
// default to 1. A point's version is raised to its newest history entry.
func Migrate(data []byte) ([]byte, bool, error) {
	if !IsLegacy(data) {
		return data, false, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, false, fmt.Errorf("%w: invalid json", review.ErrMalformedRecord)
	}

	list := gjson.GetBytes(data, legacyKey)
	if !list.IsArray() {
		return nil, false, fmt.Errorf("%w: %s is not an array", review.ErrMalformedRecord, legacyKey)
	}

	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}
	setRaw := func(path, raw string) {
		if err == nil {
			out, err = sjson.SetRawBytes(out, path, []byte(raw))
		}
	}

	version := 1
	set("format", review.CurrentFormat)
	set("part", review.PartReviewer.String())
	setRaw("history", `[]`)
	setRaw("review_points", `[]`)

	for i, rp := range list.Array() {
		prefix := "review_points." + strconv.Itoa(i) + "."

		id := rp.Get("id").String()
		if id == "" {
			id = uuid.NewString()
		}
		v := legacyVersion(rp)
		for _, h := range rp.Get("history").Array() {
			v = max(v, legacyVersion(h))
		}
		version = max(version, v)

		set(prefix+"id", id)
		set(prefix+"file", rp.Get("file").String())
		setRange(set, prefix+"range", rp.Get("range"))
		set(prefix+"comment", rp.Get("comment").String())
		if a := rp.Get("author"); a.Exists() {
			set(prefix+"author", a.String())
		}
		set(prefix+"version", v)
		set(prefix+"closed", rp.Get("closed").Bool())
		setRaw(prefix+"history", `[]`)

		for j, h := range rp.Get("history").Array() {
			hp := prefix + "history." + strconv.Itoa(j) + "."
			set(hp+"version", legacyVersion(h))
			set(hp+"part", review.PartReviewer.String())
			setRange(set, hp+"range", h.Get("range"))
			set(hp+"comment", h.Get("comment").String())
			if a := h.Get("author"); a.Exists() {
				set(hp+"author", a.String())
			}
		}
	}
	set("version", version)

	if err != nil {
		return nil, false, fmt.Errorf("migrate legacy record: %w", err)
	}
	return out, true, nil
}

func legacyVersion(rp gjson.Result) int {
	if v := rp.Get("version"); v.Exists() && v.Int() > 0 {
		return int(v.Int())
	}
	return 1
}

func setRange(set func(string, any), path string, r gjson.Result) {
	start, end := r.Get("start"), r.Get("end")
	if r.IsArray() {
		start, end = r.Get("0"), r.Get("1")
	}
	set(path+".start.line", start.Get("line").Int())
	set(path+".start.character", start.Get("character").Int())
	set(path+".end.line", end.Get("line").Int())
	set(path+".end.character", end.Get("character").Int())
}
