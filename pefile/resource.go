// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/rderr"
)

// ResourceType represents a resource type, used by PEContainer.Resources()
// (spec.md §4.8 / SPEC_FULL §C) to label the top level of the .rsrc
// directory tree. Icons() only ever looks at RTIcon/RTGroupIcon, but the
// full predefined set is kept so arbitrary resource trees can still be
// inspected and labeled.
type ResourceType int

const (
	// maxAllowedEntries guards doParseResourceDirectory against a
	// directory claiming an absurd entry count, whether from corruption
	// or a deliberately hostile sample.
	maxAllowedEntries = 0x1000
)

// Predefined Resource Types.
const (
	RTCursor       ResourceType = iota + 1      // Hardware-dependent cursor resource.
	RTBitmap                    = 2             // Bitmap resource.
	RTIcon                      = 3             // Hardware-dependent icon resource.
	RTMenu                      = 4             // Menu resource.
	RTDialog                    = 5             // Dialog box.
	RTString                    = 6             // String-table entry.
	RTFontDir                   = 7             // Font directory resource.
	RTFont                      = 8             // Font resource.
	RTAccelerator                = 9            // Accelerator table.
	RTRCdata                    = 10            // Application-defined resource (raw data).
	RTMessageTable              = 11            // Message-table entry.
	RTGroupCursor               = RTCursor + 11 // Hardware-independent cursor resource.
	RTGroupIcon                 = RTIcon + 11   // Hardware-independent icon resource.
	RTVersion                   = 16            // Version resource.
	RTDlgInclude                = 17            // Dialog include entry.
	RTPlugPlay                  = 19            // Plug and Play resource.
	RTVxD                       = 20            // VXD.
	RTAniCursor                 = 21            // Animated cursor.
	RTAniIcon                   = 22            // Animated icon.
	RTHtml                      = 23            // HTML resource.
	RTManifest                  = 24            // Side-by-Side Assembly Manifest.
)

// ImageResourceDirectory represents the IMAGE_RESOURCE_DIRECTORY.
// This data structure should be considered the heading of a table because the
// table actually consists of directory entries.
type ImageResourceDirectory struct {
	// Resource flags. This field is reserved for future use. It is currently
	// set to zero.
	Characteristics uint32 `json:"characteristics"`

	// The time that the resource data was created by the resource compiler.
	TimeDateStamp uint32 `json:"time_date_stamp"`

	// The major version number, set by the user.
	MajorVersion uint16 `json:"major_version"`

	// The minor version number, set by the user.
	MinorVersion uint16 `json:"minor_version"`

	// The number of directory entries immediately following the table that use
	// strings to identify Type, Name, or Language entries (depending on the
	// level of the table).
	NumberOfNamedEntries uint16 `json:"number_of_named_entries"`

	// The number of directory entries immediately following the Name entries
	// that use numeric IDs for Type, Name, or Language entries.
	NumberOfIDEntries uint16 `json:"number_of_id_entries"`
}

// ImageResourceDirectoryEntry represents an entry in the resource directory
// entries.
type ImageResourceDirectoryEntry struct {
	// Name is used to identify either a type of resource, a resource name, or a
	// resource's language ID.
	Name uint32 `json:"name"`

	// OffsetToData is always used to point to a sibling in the tree, either a
	// directory node or a leaf node.
	OffsetToData uint32 `json:"offset_to_data"`
}

// ImageResourceDataEntry Each Resource Data entry describes an actual unit of
// raw data in the Resource Data area.
type ImageResourceDataEntry struct {
	// The address of a unit of resource data in the Resource Data area.
	OffsetToData uint32 `json:"offset_to_data"`

	// The size, in bytes, of the resource data that is pointed to by the Data
	// RVA field.
	Size uint32 `json:"size"`

	// The code page that is used to decode code point values within the
	// resource data. Typically, the code page would be the Unicode code page.
	CodePage uint32 `json:"code_page"`

	// Reserved, must be 0.
	Reserved uint32 `json:"reserved"`
}

// ResourceDirectory represents resource directory information.
type ResourceDirectory struct {
	// IMAGE_RESOURCE_DIRECTORY structure.
	Struct ImageResourceDirectory `json:"struct"`

	// list of entries.
	Entries []ResourceDirectoryEntry `json:"entries"`
}

// ResourceDirectoryEntry represents a resource directory entry.
type ResourceDirectoryEntry struct {
	// IMAGE_RESOURCE_DIRECTORY_ENTRY structure.
	Struct ImageResourceDirectoryEntry `json:"struct"`

	// If the resource is identified by name this attribute will contain the
	// name string. Empty string otherwise. If identified by id, the id is
	// available at `ID` field.
	Name string `json:"name"`

	// The resource identifier.
	ID uint32 `json:"id"`

	// IsResourceDir tell us if the entry is pointing to a resource directory or
	// a resource data entry.
	IsResourceDir bool `json:"is_resource_dir"`

	// If this entry has a lower level directory this attribute will point to
	// the ResourceDirData instance representing it.
	Directory ResourceDirectory `json:"directory"`

	// If this entry has no further lower directories and points to the actual
	// resource data, this attribute will reference the corresponding
	// ResourceDataEntry instance.
	Data ResourceDataEntry `json:"data"`
}

// ResourceDataEntry represents a resource data entry, split into the
// IMAGE_RESOURCE_DATA_ENTRY on-disk fields plus the language/sub-language
// pair recovered from the parent directory entry's Name field.
type ResourceDataEntry struct {
	Struct ImageResourceDataEntry `json:"struct"`

	// Primary language ID.
	Lang uint32 `json:"lang"`

	// Sub language ID.
	SubLang uint32 `json:"sub_lang"`
}

func (pe *File) parseResourceDataEntry(rva uint32) (ImageResourceDataEntry, error) {
	dataEntry := ImageResourceDataEntry{}
	dataEntrySize := uint32(binary.Size(dataEntry))
	offset := pe.GetOffsetFromRva(rva)
	if err := pe.structUnpack(&dataEntry, offset, dataEntrySize); err != nil {
		return ImageResourceDataEntry{}, rderr.Wrap(rderr.KindOutOfBounds,
			"resource data entry RVA is invalid", err)
	}
	return dataEntry, nil
}

func (pe *File) parseResourceDirectoryEntry(rva uint32) (ImageResourceDirectoryEntry, error) {
	entry := ImageResourceDirectoryEntry{}
	entrySize := uint32(binary.Size(entry))
	offset := pe.GetOffsetFromRva(rva)
	if err := pe.structUnpack(&entry, offset, entrySize); err != nil {
		return ImageResourceDirectoryEntry{}, rderr.Wrap(rderr.KindOutOfBounds,
			"resource directory entry RVA is invalid", err)
	}
	if entry == (ImageResourceDirectoryEntry{}) {
		return ImageResourceDirectoryEntry{}, rderr.New(rderr.KindMissingResource,
			"resource directory entry is all zeros")
	}
	return entry, nil
}

// doParseResourceDirectory walks the .rsrc directory hierarchy the way a
// filesystem driver walks a disk: a root directory holding subdirectories,
// which in turn hold subdirectories of their own that eventually reach the
// raw bytes of a dialog template, icon, or other resource leaf.
func (pe *File) doParseResourceDirectory(rva, size, baseRVA, level uint32,
	dirs []uint32) (ResourceDirectory, error) {

	resourceDir := ImageResourceDirectory{}
	resourceDirSize := uint32(binary.Size(resourceDir))
	offset := pe.GetOffsetFromRva(rva)
	if err := pe.structUnpack(&resourceDir, offset, resourceDirSize); err != nil {
		return ResourceDirectory{}, rderr.Wrap(rderr.KindOutOfBounds,
			"resource directory header RVA is invalid", err)
	}

	if baseRVA == 0 {
		baseRVA = rva
	}

	if len(dirs) == 0 {
		dirs = append(dirs, rva)
	}

	// Advance the RVA to the position immediately following the directory
	// table header and pointing to the first entry in the table.
	rva += resourceDirSize

	numberOfEntries := int(resourceDir.NumberOfNamedEntries +
		resourceDir.NumberOfIDEntries)
	var dirEntries []ResourceDirectoryEntry

	// Set a hard limit on the maximum reasonable number of entries: a
	// corrupt or hostile sample can claim any 16-bit count here.
	if numberOfEntries > maxAllowedEntries {
		return ResourceDirectory{}, rderr.Newf(rderr.KindCorruptSize,
			"resource directory claims %d entries, exceeds the allowed maximum",
			numberOfEntries)
	}

	for i := 0; i < numberOfEntries; i++ {
		res, err := pe.parseResourceDirectoryEntry(rva)
		if err != nil {
			pe.logger.Warnf("skipping remaining resource directory entries: %v", err)
			break
		}

		nameIsString := (res.Name & 0x80000000) >> 31
		entryName := ""
		entryID := uint32(0)
		if nameIsString == 0 {
			entryID = res.Name
		} else {
			nameOffset := res.Name & 0x7FFFFFFF
			uStringOffset := pe.GetOffsetFromRva(baseRVA + nameOffset)
			maxLen, err := pe.ReadUint16(uStringOffset)
			if err != nil {
				break
			}
			entryName = pe.readUnicodeStringAtRVA(baseRVA+nameOffset+2,
				uint32(maxLen*2))
		}

		// A directory entry points to either another resource directory or to
		// the data for an individual resource. When the directory entry points
		// to another resource directory, the high bit of the second DWORD in
		// the structure is set and the remaining 31 bits are an offset to the
		// resource directory.
		dataIsDirectory := (res.OffsetToData & 0x80000000) >> 31

		// The offset is relative to the beginning of the resource section,
		// not an RVA.
		offsetToDirectory := res.OffsetToData & 0x7FFFFFFF
		if dataIsDirectory > 0 {
			// One trick malware can do is to recursively reference the next
			// directory. If the RVA we're about to recurse into is already
			// on the path from the root, assume it's a cycle and stop
			// descending instead of looping forever.
			if intInSlice(baseRVA+offsetToDirectory, dirs) {
				break
			}

			level++
			dirs = append(dirs, baseRVA+offsetToDirectory)
			directoryEntry, err := pe.doParseResourceDirectory(
				baseRVA+offsetToDirectory,
				size-(rva-baseRVA),
				baseRVA,
				level,
				dirs)
			if err != nil {
				pe.logger.Warnf("skipping resource subdirectory: %v", err)
			}

			dirEntries = append(dirEntries, ResourceDirectoryEntry{
				Struct:        res,
				Name:          entryName,
				ID:            entryID,
				IsResourceDir: true,
				Directory:     directoryEntry})
		} else {
			dataEntryStruct, err := pe.parseResourceDataEntry(baseRVA + offsetToDirectory)
			if err != nil {
				pe.logger.Warnf("skipping resource data entry: %v", err)
				rva += uint32(binary.Size(res))
				continue
			}
			entryData := ResourceDataEntry{
				Struct:  dataEntryStruct,
				Lang:    res.Name & 0x3ff,
				SubLang: res.Name >> 10,
			}

			dirEntries = append(dirEntries, ResourceDirectoryEntry{
				Struct:        res,
				Name:          entryName,
				ID:            entryID,
				IsResourceDir: false,
				Data:          entryData})
		}

		rva += uint32(binary.Size(res))
	}

	return ResourceDirectory{
		Struct:  resourceDir,
		Entries: dirEntries,
	}, nil
}

// parseResourceDirectory is the C8 PEContainer entry point for
// PEContainer.Resources(): the resources found are retained on pe.Resources
// and consumed directly by Icons() for RT_ICON/RT_GROUP_ICON extraction.
func (pe *File) parseResourceDirectory(rva, size uint32) error {
	resources, err := pe.doParseResourceDirectory(rva, size, 0, 0, nil)
	if err != nil {
		return err
	}

	pe.Resources = resources
	pe.HasResource = true
	return nil
}

// String stringifies the resource type, used when the CLI pretty-prints a
// PEContainer.Resources() tree for a reverse engineer.
func (rt ResourceType) String() string {

	rsrcTypeMap := map[ResourceType]string{
		RTCursor:       "Cursor",
		RTBitmap:       "Bitmap",
		RTIcon:         "Icon",
		RTMenu:         "Menu",
		RTDialog:       "Dialog box",
		RTString:       "String",
		RTFontDir:      "Font directory",
		RTFont:         "Font",
		RTAccelerator:  "Accelerator",
		RTRCdata:       "RC Data",
		RTMessageTable: "Message Table",
		RTGroupCursor:  "Group Cursor",
		RTGroupIcon:    "Group Icon",
		RTVersion:      "Version",
		RTDlgInclude:   "Dialog Include",
		RTPlugPlay:     "Plug & Play",
		RTVxD:          "VxD",
		RTAniCursor:    "Animated Cursor",
		RTAniIcon:      "Animated Icon",
		RTHtml:         "HTML",
		RTManifest:     "Manifest",
	}

	return rsrcTypeMap[rt]
}
