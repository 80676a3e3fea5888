package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/retrodasm/resourcedasm/pefile"
)

func prettyJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// runPEDump mirrors saferwall/pe's `pedumper dump` shape: parse once,
// then print the structures a reverse engineer cares about as indented
// JSON.
func runPEDump(path string) error {
	pe, err := pefile.New(path, &pefile.Options{})
	if err != nil {
		return err
	}
	defer pe.Close()

	if err := pe.Parse(); err != nil {
		return err
	}

	img, err := pe.LoadInto()
	if err != nil {
		img = nil
	}
	var loadedSize int
	var baseRVA uint32
	if img != nil {
		loadedSize = len(img.Data)
		baseRVA = img.BaseRVA
	}

	labels, err := pe.LabelsForLoadedImports()
	if err != nil {
		labels = nil
	}

	out, err := prettyJSON(struct {
		DOSHeader      interface{}    `json:"dos_header"`
		NtHeader       interface{}    `json:"nt_header"`
		Sections       interface{}    `json:"sections"`
		Imports        interface{}    `json:"imports"`
		Anomalies      interface{}    `json:"anomalies"`
		LoadedBaseRVA  uint32         `json:"loaded_base_rva"`
		LoadedSize     int            `json:"loaded_size"`
		ImportLabels   map[uint32]string `json:"import_labels,omitempty"`
	}{pe.DOSHeader, pe.NtHeader, pe.Sections, pe.Imports, pe.Anomalies,
		baseRVA, loadedSize, labels})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
