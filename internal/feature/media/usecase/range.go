// Package usecase implements byte-range resolution for media streaming.
package usecase

import (
	"strconv"
	"strings"
)

// RangeKind tags the outcome of parsing a Range header.
type RangeKind int

const (
	// RangeNone means no Range header was supplied; serve the full file.
	RangeNone RangeKind = iota
	// RangePartial means a single valid byte window was requested.
	RangePartial
	// RangeInvalid means the header was malformed or out of bounds;
	// the response must be 416 Range Not Satisfiable.
	RangeInvalid
)

// ByteRange is an inclusive byte window within a file of known size.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes in the window.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange resolves a Range header against a file of the given size.
//
// Only single ranges of the form "bytes=start-" or "bytes=start-end" are
// accepted; the start is required and the end defaults to size-1. Anything
// else (other units, suffix ranges, multiple ranges, start > end,
// start >= size) is RangeInvalid. An empty header is RangeNone.
func ParseRange(header string, size int64) (ByteRange, RangeKind) {
	if header == "" {
		return ByteRange{Start: 0, End: size - 1}, RangeNone
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, RangeInvalid
	}
	if strings.Contains(spec, ",") {
		// Multi-range requests are not supported.
		return ByteRange{}, RangeInvalid
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, RangeInvalid
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, RangeInvalid
	}

	end := size - 1
	if s := strings.TrimSpace(endStr); s != "" {
		end, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ByteRange{}, RangeInvalid
		}
	}

	if start > end || start >= size || end >= size {
		return ByteRange{}, RangeInvalid
	}

	return ByteRange{Start: start, End: end}, RangePartial
}
