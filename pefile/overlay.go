// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"io"

	"github.com/retrodasm/resourcedasm/rderr"
)

// NewOverlayReader returns a ReadSeeker over the bytes appended after the
// last section's raw data, the trailing payload malware and installers
// commonly smuggle data in.
func (pe *File) NewOverlayReader() (*io.SectionReader, error) {
	if pe.f == nil {
		return nil, rderr.New(rderr.KindMissingResource, "pe file handle is nil, overlay requires a disk-backed file")
	}
	return io.NewSectionReader(pe.f, pe.OverlayOffset, 1<<63-1), nil
}

// Overlay returns the bytes trailing the last section, or an error if the
// file has no overlay.
func (pe *File) Overlay() ([]byte, error) {
	if pe.OverlayLength() <= 0 {
		return nil, rderr.New(rderr.KindMissingResource, "pe does not have overlay data")
	}

	sr, err := pe.NewOverlayReader()
	if err != nil {
		return nil, err
	}

	overlay := make([]byte, pe.OverlayLength())
	n, err := sr.ReadAt(overlay, 0)
	if n != len(overlay) {
		return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading overlay bytes", err)
	}

	pe.HasOverlay = true
	return overlay, nil
}

// OverlayLength returns the number of bytes trailing the last section.
func (pe *File) OverlayLength() int64 {
	return int64(pe.size) - pe.OverlayOffset
}
