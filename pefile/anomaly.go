// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"encoding/binary"
	"time"
)

// Anomaly strings describing malformed-but-loadable PE headers. None of
// these stop Windows from loading the file; they're surfaced to a reverse
// engineer as a PEContainer.Anomalies() best-effort finding, the way a
// packer or hand-crafted loader stub would trip them.
var (
	AnoPEHeaderOverlapDOSHeader = "PE Header overlaps with DOS header"

	AnoPETimeStampNull = "File Header timestamp set to 0"

	AnoPETimeStampFuture = "File Header timestamp set in the future"

	AnoNumberOfSections10Plus = "Number of sections is 10+"

	AnoNumberOfSectionsNull = "Number of sections is 0"

	AnoSizeOfOptionalHeaderNull = "Size of optional header is 0"

	AnoUncommonSizeOfOptionalHeader32 = "Size of optional header is larger than 0xE0 (PE32)"

	AnoUncommonSizeOfOptionalHeader64 = "Size of optional header is larger than 0xF0 (PE32+)"

	AnoAddressOfEntryPointNull = "Address of entry point is 0"

	AnoAddressOfEPLessSizeOfHeaders = "Address of entry point is smaller than size of headers, " +
		"the file cannot run under Windows 8"

	AnoImageBaseNull = "Image base is 0"

	AnoDanSMagicOffset = "`DanS` magic offset is different than 0x80"

	// ErrInvalidFileAlignment is reported when file alignment is larger than
	// 0x200 and not a power of 2.
	ErrInvalidFileAlignment = "FileAlignment larger than 0x200 and not a power of 2"

	// ErrInvalidSectionAlignment is reported when file alignment is lesser
	// than 0x200 and different from section alignment.
	ErrInvalidSectionAlignment = "FileAlignment lesser than 0x200 and different from section alignment"

	AnoMajorSubsystemVersion = "MajorSubsystemVersion is outside 3<-->6 boundary"

	AnonWin32VersionValue = "Win32VersionValue is a reserved field, must be set to zero"

	AnoInvalidPEChecksum = "Optional header checksum is invalid"

	AnoNumberOfRvaAndSizes = "Optional header NumberOfRvaAndSizes != 16"

	AnoReservedDataDirectoryEntry = "Last data directory entry is a reserved field, must be set to zero"

	AnoCOFFSymbolsCount = "COFF symbols count is absurdly high"

	AnoInvalidSizeOfImage = "Invalid SizeOfImage value, should be multiple of SectionAlignment"
)

// GetAnomalies runs the header-level heuristics a reverse engineer checks
// by hand: a legitimate compiler never produces most of these, so their
// presence hints at a hand-patched or packed binary without being a reason
// to reject the file outright.
func (pe *File) GetAnomalies() error {

	if pe.NtHeader.FileHeader.NumberOfSections >= 10 {
		pe.addAnomaly(AnoNumberOfSections10Plus)
	}

	if pe.NtHeader.FileHeader.TimeDateStamp == 0 {
		pe.addAnomaly(AnoPETimeStampNull)
	}

	future := uint32(time.Now().Add(24 * time.Hour).Unix())
	if pe.NtHeader.FileHeader.TimeDateStamp > future {
		pe.addAnomaly(AnoPETimeStampFuture)
	}

	if pe.NtHeader.FileHeader.NumberOfSections == 0 {
		pe.addAnomaly(AnoNumberOfSectionsNull)
	}

	if pe.NtHeader.FileHeader.SizeOfOptionalHeader == 0 {
		pe.addAnomaly(AnoSizeOfOptionalHeaderNull)
	}

	oh32 := ImageOptionalHeader32{}
	oh64 := ImageOptionalHeader64{}

	if pe.Is32 &&
		pe.NtHeader.FileHeader.SizeOfOptionalHeader > uint16(binary.Size(oh32)) {
		pe.addAnomaly(AnoUncommonSizeOfOptionalHeader32)
	}

	if pe.Is64 &&
		pe.NtHeader.FileHeader.SizeOfOptionalHeader > uint16(binary.Size(oh64)) {
		pe.addAnomaly(AnoUncommonSizeOfOptionalHeader64)
	}

	switch pe.Is64 {
	case true:
		oh64 = pe.NtHeader.OptionalHeader.(ImageOptionalHeader64)
	case false:
		oh32 = pe.NtHeader.OptionalHeader.(ImageOptionalHeader32)
	}

	// The checks below read the 32-bit optional header only; for a PE32+
	// header oh32 stays zero-valued (PE32+ images are rejected when the NT
	// header is parsed).
	oh := oh32
	if oh.AddressOfEntryPoint != 0 && oh.AddressOfEntryPoint < oh.SizeOfHeaders {
		pe.addAnomaly(AnoAddressOfEPLessSizeOfHeaders)
	}

	if oh.AddressOfEntryPoint == 0 {
		pe.addAnomaly(AnoAddressOfEntryPointNull)
	}

	if (pe.Is64 && oh64.ImageBase == 0) ||
		(pe.Is32 && oh32.ImageBase == 0) {
		pe.addAnomaly(AnoImageBaseNull)
	}

	if oh.SectionAlignment != 0 && oh.SizeOfImage%oh.SectionAlignment != 0 {
		pe.addAnomaly(AnoInvalidSizeOfImage)
	}

	if oh.MajorSubsystemVersion < 3 || oh.MajorSubsystemVersion > 6 {
		pe.addAnomaly(AnoMajorSubsystemVersion)
	}

	if oh.Win32VersionValue != 0 {
		pe.addAnomaly(AnonWin32VersionValue)
	}

	if pe.Checksum() != oh.CheckSum && oh.CheckSum != 0 {
		pe.addAnomaly(AnoInvalidPEChecksum)
	}

	if (pe.Is64 && oh64.NumberOfRvaAndSizes != 0x10) ||
		(pe.Is32 && oh32.NumberOfRvaAndSizes != 0x10) {
		pe.addAnomaly(AnoNumberOfRvaAndSizes)
	}

	return nil
}

// addAnomaly appends the given anomaly to the list of anomalies, skipping
// duplicates so a corrupted field that every helper trips on independently
// only shows up once.
func (pe *File) addAnomaly(anomaly string) {
	if !stringInSlice(anomaly, pe.Anomalies) {
		pe.Anomalies = append(pe.Anomalies, anomaly)
	}
}
