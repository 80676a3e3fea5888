// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func TestLabelsForLoadedImports(t *testing.T) {
	pe := &File{}
	pe.NtHeader.OptionalHeader = ImageOptionalHeader32{ImageBase: 0x400000}
	pe.Imports = []Import{
		{
			Name: "KERNEL32.dll",
			Functions: []ImportFunction{
				{Name: "CreateFileW", ThunkRVA: 0x2000},
				{Name: "unbound", ThunkRVA: 0}, // not yet resolved, skipped
			},
		},
		{
			Name: "USER32.dll",
			Functions: []ImportFunction{
				{Name: "MessageBoxW", ThunkRVA: 0x2008},
			},
		},
	}

	labels, err := pe.LabelsForLoadedImports()
	if err != nil {
		t.Fatalf("LabelsForLoadedImports failed: %v", err)
	}

	want := map[uint32]string{
		0x402000: "KERNEL32.dll:CreateFileW",
		0x402008: "USER32.dll:MessageBoxW",
	}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d: %v", len(labels), len(want), labels)
	}
	for addr, name := range want {
		if labels[addr] != name {
			t.Errorf("labels[%#x] = %q, want %q", addr, labels[addr], name)
		}
	}
}

func TestLabelsForLoadedImportsEmpty(t *testing.T) {
	pe := &File{}
	pe.NtHeader.OptionalHeader = ImageOptionalHeader32{ImageBase: 0x400000}

	_, err := pe.LabelsForLoadedImports()
	if !rderr.Is(err, rderr.KindMissingResource) {
		t.Fatalf("expected KindMissingResource, got %v", err)
	}
}

func TestGetImportEntryInfoByRVA(t *testing.T) {
	pe := &File{}
	pe.Imports = []Import{
		{Name: "KERNEL32.dll", Functions: []ImportFunction{
			{Name: "ExitProcess", ThunkRVA: 0x3000},
		}},
	}

	imp, idx := pe.GetImportEntryInfoByRVA(0x3000)
	if imp.Name != "KERNEL32.dll" || imp.Functions[idx].Name != "ExitProcess" {
		t.Errorf("GetImportEntryInfoByRVA(0x3000) = %+v, %d, want KERNEL32.dll/ExitProcess", imp, idx)
	}

	if imp, _ := pe.GetImportEntryInfoByRVA(0xdead); imp.Name != "" {
		t.Errorf("expected empty Import for unknown RVA, got %+v", imp)
	}
}
