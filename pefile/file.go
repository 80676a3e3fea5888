// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
	"go.mozilla.org/pkcs7"

	"github.com/retrodasm/resourcedasm/rderr"
)

// A File is a parsed MZ/PE32 image: the resource decoder engine's loader
// for Windows executables (spec.md component C8). It exposes the section
// table and import directory the disassembler annotation pass needs, plus
// the resource directory and certificate store, as best-effort extras.
type File struct {
	DOSHeader    ImageDOSHeader    `json:"dos_header,omitempty"`
	NtHeader     ImageNtHeader     `json:"nt_header,omitempty"`
	COFF         COFF              `json:"coff,omitempty"`
	Sections     []Section         `json:"sections,omitempty"`
	Imports      []Import          `json:"imports,omitempty"`
	Resources    ResourceDirectory `json:"resources,omitempty"`
	Certificates []*pkcs7.PKCS7    `json:"-"`
	GlobalPtr    uint32            `json:"global_ptr,omitempty"`
	Anomalies    []string          `json:"anomalies,omitempty"`
	Header       []byte
	data         mmap.MMap
	FileInfo
	size          uint32
	OverlayOffset int64
	f             *os.File
	opts          *Options
	logger        *log.Helper
}

// Options controls how a PE image is parsed.
type Options struct {

	// Parse only the PE header and do not parse data directories, by default (false).
	Fast bool

	// Includes section entropy, by default (false).
	SectionEntropy bool

	// A custom logger.
	Logger log.Logger
}

// New instantiates a file instance with options given a file name.
func New(name string, opts *Options) (*File, error) {

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	// Memory map the file instead of using read/write.
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := File{}
	if opts != nil {
		file.opts = opts
	} else {
		file.opts = &Options{}
	}

	file.logger = newHelper(file.opts.Logger)

	file.data = data
	file.size = uint32(len(file.data))
	file.f = f
	return &file, nil
}

// newHelper builds a level-filtered log.Helper, defaulting to stdout at
// error level the way saferwall/pe's own log wrapper does.
func newHelper(custom log.Logger) *log.Helper {
	if custom != nil {
		return log.NewHelper(custom)
	}
	return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stdout),
		log.FilterLevel(log.LevelError)))
}

// NewBytes instantiates a file instance with options given a memory buffer.
func NewBytes(data []byte, opts *Options) (*File, error) {

	file := File{}
	if opts != nil {
		file.opts = opts
	} else {
		file.opts = &Options{}
	}

	file.logger = newHelper(file.opts.Logger)

	file.data = data
	file.size = uint32(len(file.data))
	return &file, nil
}

// Close closes the File.
func (pe *File) Close() error {
	if pe.data != nil {
		_ = pe.data.Unmap()
	}

	if pe.f != nil {
		return pe.f.Close()
	}
	return nil
}

// Parse performs the file parsing for a PE binary. PE32+ images (64-bit)
// are rejected outright: spec.md §4.8 scopes this loader to PE32.
func (pe *File) Parse() error {

	// check for the smallest PE size.
	if len(pe.data) < TinyPESize {
		return rderr.New(rderr.KindCorruptSize, "not a PE file, smaller than tiny PE")
	}

	// Parse the DOS header.
	err := pe.ParseDOSHeader()
	if err != nil {
		return err
	}

	// Parse the NT header.
	err = pe.ParseNTHeader()
	if err != nil {
		return err
	}

	// Anomaly detection is best-effort: a malformed header field is logged
	// and skipped rather than failing the whole parse.
	if err := pe.GetAnomalies(); err != nil {
		pe.logger.Warnf("anomaly detection incomplete: %v", err)
	}

	// Parse the Section Header.
	err = pe.ParseSectionHeader()
	if err != nil {
		return err
	}

	// In fast mode, do not parse data directories.
	if pe.opts.Fast {
		return nil
	}

	// Parse the Data Directory entries.
	return pe.ParseDataDirectories()
}

// String stringify the data directory entry.
func (entry ImageDirectoryEntry) String() string {
	dataDirMap := map[ImageDirectoryEntry]string{
		ImageDirectoryEntryImport:      "Import",
		ImageDirectoryEntryResource:    "Resource",
		ImageDirectoryEntryCertificate: "Security",
		ImageDirectoryEntryGlobalPtr:   "GlobalPtr",
		ImageDirectoryEntryReserved:    "Reserved",
	}

	return dataDirMap[entry]
}

// ParseDataDirectories parses the subset of data directories the resource
// decoder engine's PE loader cares about: imports (for disassembly
// labeling), resources (for icon extraction), the certificate directory,
// and the global-pointer RVA. The other directory slots (exports,
// relocations, TLS, debug, bound/delay imports, CLR metadata, ...) are
// outside this spec's PEContainer and are skipped even when present.
func (pe *File) ParseDataDirectories() error {

	foundErr := false
	oh32 := ImageOptionalHeader32{}
	oh64 := ImageOptionalHeader64{}

	switch pe.Is64 {
	case true:
		oh64 = pe.NtHeader.OptionalHeader.(ImageOptionalHeader64)
	case false:
		oh32 = pe.NtHeader.OptionalHeader.(ImageOptionalHeader32)
	}

	// Maps data directory index to function which parses that directory.
	funcMaps := map[ImageDirectoryEntry](func(uint32, uint32) error){
		ImageDirectoryEntryImport:      pe.parseImportDirectory,
		ImageDirectoryEntryResource:    pe.parseResourceDirectory,
		ImageDirectoryEntryCertificate: pe.parseSecurityDirectory,
		ImageDirectoryEntryGlobalPtr:   pe.parseGlobalPtrDirectory,
	}

	// Iterate over data directories and call the appropriate function.
	for entryIndex := ImageDirectoryEntry(0); entryIndex < ImageNumberOfDirectoryEntries; entryIndex++ {

		parseFn, handled := funcMaps[entryIndex]
		if !handled {
			continue
		}

		var va, size uint32
		switch pe.Is64 {
		case true:
			dirEntry := oh64.DataDirectory[entryIndex]
			va = dirEntry.VirtualAddress
			size = dirEntry.Size
		case false:
			dirEntry := oh32.DataDirectory[entryIndex]
			va = dirEntry.VirtualAddress
			size = dirEntry.Size
		}

		if va == 0 {
			continue
		}

		func() {
			// keep parsing data directories even though some entries fail.
			defer func() {
				if e := recover(); e != nil {
					pe.logger.Errorf("unhandled exception when parsing data directory %s, reason: %v",
						entryIndex.String(), e)
					foundErr = true
				}
			}()

			if err := parseFn(va, size); err != nil {
				pe.logger.Warnf("failed to parse data directory %s, reason: %v",
					entryIndex.String(), err)
			}
		}()
	}

	if foundErr {
		return rderr.New(rderr.KindCorruptSize, "data directory parsing failed")
	}
	return nil
}
