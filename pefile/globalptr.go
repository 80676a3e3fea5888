// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import "github.com/retrodasm/resourcedasm/rderr"

// AnoInvalidGlobalPtrReg is reported when the global pointer register offset
// falls outside the image.
const AnoInvalidGlobalPtrReg = "Global pointer register offset outside of PE image"

// parseGlobalPtrDirectory reads the RVA of the value to be stored in the
// global pointer register (IA-64's gp, mirrored here for completeness even
// though this loader only supports PE32). The directory is all zeros on
// architectures without a global pointer concept.
func (pe *File) parseGlobalPtrDirectory(rva, size uint32) error {
	offset := pe.GetOffsetFromRva(rva)
	if offset == ^uint32(0) {
		pe.addAnomaly(AnoInvalidGlobalPtrReg)
		return nil
	}

	v, err := pe.ReadUint32(offset)
	if err != nil {
		return rderr.Wrap(rderr.KindOutOfBounds, "reading global pointer value", err)
	}

	pe.GlobalPtr = v
	pe.HasGlobalPtr = true
	return nil
}
