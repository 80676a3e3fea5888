// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"bytes"
	"testing"
)

func newLoadInTestFile() *File {
	data := make([]byte, 0x800)
	for i := 0x400; i < 0x600; i++ {
		data[i] = 0xAA
	}
	for i := 0x600; i < 0x800; i++ {
		data[i] = 0xBB
	}

	pe := &File{data: data, size: uint32(len(data))}
	pe.NtHeader.OptionalHeader = ImageOptionalHeader32{
		FileAlignment:    0x200,
		SectionAlignment: 0x1000,
	}
	pe.Sections = []Section{
		{Header: ImageSectionHeader{
			VirtualAddress:   0x1000,
			VirtualSize:      0x50,
			SizeOfRawData:    0x200,
			PointerToRawData: 0x400,
		}},
		{Header: ImageSectionHeader{
			VirtualAddress:   0x2000,
			VirtualSize:      0x30,
			SizeOfRawData:    0x200,
			PointerToRawData: 0x600,
		}},
	}
	return pe
}

func TestLoadInto(t *testing.T) {
	pe := newLoadInTestFile()

	img, err := pe.LoadInto()
	if err != nil {
		t.Fatalf("LoadInto failed: %v", err)
	}

	if img.BaseRVA != 0x1000 {
		t.Errorf("BaseRVA = %#x, want 0x1000", img.BaseRVA)
	}
	if len(img.Data) != 0x1200 {
		t.Fatalf("len(Data) = %#x, want 0x1200", len(img.Data))
	}

	if !bytes.Equal(img.Data[0:0x200], bytes.Repeat([]byte{0xAA}, 0x200)) {
		t.Errorf("first section's bytes were not copied at offset 0")
	}
	if !bytes.Equal(img.Data[0x1000:0x1200], bytes.Repeat([]byte{0xBB}, 0x200)) {
		t.Errorf("second section's bytes were not copied at offset 0x1000")
	}
}

func TestLoadedImageOffset(t *testing.T) {
	img := &LoadedImage{BaseRVA: 0x1000, Data: make([]byte, 0x1200)}

	if off, ok := img.Offset(0x1050); !ok || off != 0x50 {
		t.Errorf("Offset(0x1050) = (%d, %v), want (0x50, true)", off, ok)
	}
	if _, ok := img.Offset(0x500); ok {
		t.Errorf("Offset(0x500) should report false, RVA is below BaseRVA")
	}
	if _, ok := img.Offset(0x3000); ok {
		t.Errorf("Offset(0x3000) should report false, RVA is past the arena")
	}
}

func TestLoadIntoNoSections(t *testing.T) {
	pe := &File{}
	if _, err := pe.LoadInto(); err == nil {
		t.Fatalf("expected an error when no sections were parsed")
	}
}
