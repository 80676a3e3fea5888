// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import "testing"

func TestAddAnomalyDeduplicates(t *testing.T) {
	pe := &File{}
	pe.addAnomaly(AnoImageBaseNull)
	pe.addAnomaly(AnoImageBaseNull)
	pe.addAnomaly(AnoAddressOfEntryPointNull)

	if len(pe.Anomalies) != 2 {
		t.Fatalf("expected 2 distinct anomalies, got %d: %v", len(pe.Anomalies), pe.Anomalies)
	}
}

func TestGetAnomaliesZeroTimestamp(t *testing.T) {
	pe := &File{}
	pe.NtHeader.OptionalHeader = ImageOptionalHeader32{
		AddressOfEntryPoint: 0x1000,
		SizeOfHeaders:       0x400,
		ImageBase:           0x400000,
		SectionAlignment:    0x1000,
		SizeOfImage:         0x2000,
		MajorSubsystemVersion: 5,
		NumberOfRvaAndSizes:   16,
	}
	pe.Is32 = true

	if err := pe.GetAnomalies(); err != nil {
		t.Fatalf("GetAnomalies failed: %v", err)
	}

	found := false
	for _, a := range pe.Anomalies {
		if a == AnoPETimeStampNull {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q for zero TimeDateStamp, got %v", AnoPETimeStampNull, pe.Anomalies)
	}
}
