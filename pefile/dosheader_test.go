// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"encoding/binary"
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func dosHeaderBytes(magic uint16, elfanew uint32) []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint16(buf[0:2], magic)
	binary.LittleEndian.PutUint32(buf[60:64], elfanew)
	return buf
}

func TestParseDOSHeaderValid(t *testing.T) {
	file, err := NewBytes(dosHeaderBytes(ImageDOSSignature, 0x40), &Options{})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	if err := file.ParseDOSHeader(); err != nil {
		t.Fatalf("ParseDOSHeader failed: %v", err)
	}
	if !file.HasDOSHdr {
		t.Errorf("expected HasDOSHdr to be set")
	}
	if file.DOSHeader.AddressOfNewEXEHeader != 0x40 {
		t.Errorf("got e_lfanew %#x, want 0x40", file.DOSHeader.AddressOfNewEXEHeader)
	}
}

func TestParseDOSHeaderBadMagic(t *testing.T) {
	file, err := NewBytes(dosHeaderBytes(0x1234, 0x40), &Options{})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	err = file.ParseDOSHeader()
	if !rderr.Is(err, rderr.KindBadMagic) {
		t.Fatalf("expected KindBadMagic, got %v", err)
	}
}

func TestParseDOSHeaderInvalidElfanew(t *testing.T) {
	file, err := NewBytes(dosHeaderBytes(ImageDOSSignature, 1), &Options{})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	err = file.ParseDOSHeader()
	if !rderr.Is(err, rderr.KindCorruptSize) {
		t.Fatalf("expected KindCorruptSize, got %v", err)
	}
}

func TestParseDOSHeaderOverlapAnomaly(t *testing.T) {
	file, err := NewBytes(dosHeaderBytes(ImageDOSSignature, 0x3c), &Options{})
	if err != nil {
		t.Fatalf("NewBytes failed: %v", err)
	}
	if err := file.ParseDOSHeader(); err != nil {
		t.Fatalf("ParseDOSHeader failed: %v", err)
	}
	found := false
	for _, a := range file.Anomalies {
		if a == AnoPEHeaderOverlapDOSHeader {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q anomaly for e_lfanew=0x3c, got %v", AnoPEHeaderOverlapDOSHeader, file.Anomalies)
	}
}
