// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func TestOverlay(t *testing.T) {
	sectionBytes := bytes.Repeat([]byte{0xAA}, 16)
	overlayBytes := []byte("trailing-overlay-data")

	path := filepath.Join(t.TempDir(), "sample.bin")
	if err := os.WriteFile(path, append(sectionBytes, overlayBytes...), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	file, err := New(path, &Options{Fast: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer file.Close()

	file.OverlayOffset = int64(len(sectionBytes))

	got, err := file.Overlay()
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if !bytes.Equal(got, overlayBytes) {
		t.Errorf("Overlay = %q, want %q", got, overlayBytes)
	}
	if !file.HasOverlay {
		t.Errorf("expected HasOverlay to be set")
	}
}

func TestOverlayAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bin")
	data := bytes.Repeat([]byte{0xBB}, 32)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	file, err := New(path, &Options{Fast: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer file.Close()

	file.OverlayOffset = int64(len(data))

	_, err = file.Overlay()
	if !rderr.Is(err, rderr.KindMissingResource) {
		t.Fatalf("expected KindMissingResource, got %v", err)
	}
}
