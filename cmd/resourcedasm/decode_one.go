package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/retrodasm/resourcedasm/decode"
	"github.com/retrodasm/resourcedasm/rderr"
)

func supportedTypesSorted() []string {
	types := decode.SupportedTypes()
	sort.Strings(types)
	return types
}

// decodeAndSave decodes one resource and writes the resulting artifact
// to outDir, picking a filename and on-disk shape from its Kind: images
// become BMP files, audio becomes a .wav file, text and JSON become
// plain files.
func decodeAndSave(c decode.Lookup, resType string, id int16, outDir string) error {
	data, err := c.GetResourceData(resType, id, true)
	if err != nil {
		return err
	}
	artifact, err := decode.Decode(resType, id, data, decode.Options{Lookup: c})
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%s_%d", sanitizeType(resType), id)
	switch artifact.Kind {
	case decode.KindImage:
		return artifact.Image.Save(filepath.Join(outDir, base+".bmp"), rasterBMP())
	case decode.KindImages:
		for i, img := range artifact.Images {
			path := filepath.Join(outDir, fmt.Sprintf("%s_%d.bmp", base, i))
			if err := img.Save(path, rasterBMP()); err != nil {
				return err
			}
		}
		return nil
	case decode.KindAudio:
		return os.WriteFile(filepath.Join(outDir, base+".wav"), artifact.Audio, 0o644)
	case decode.KindText:
		return os.WriteFile(filepath.Join(outDir, base+".txt"), []byte(artifact.Text), 0o644)
	case decode.KindJSON:
		return os.WriteFile(filepath.Join(outDir, base+".json"), artifact.JSON, 0o644)
	default:
		return rderr.Newf(rderr.KindUnsupportedFeature, "decoded artifact has no on-disk shape (kind %v)", artifact.Kind)
	}
}

func sanitizeType(resType string) string {
	out := []rune(resType)
	for i, r := range out {
		if r == ' ' || r == '/' || r == '\\' {
			out[i] = '_'
		}
	}
	return string(out)
}

func runDecodeOne(path, resType string, id int16, outDir string, verbose bool) error {
	c, err := openContainer(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	return decodeAndSave(c, resType, id, outDir)
}

// runExtract decodes every resource in the container, logging-and-
// continuing on a per-resource failure per spec.md §7 rather than
// aborting the whole walk; it exits non-zero only if nothing decoded.
func runExtract(path, outDir string, verbose bool) error {
	c, err := openContainer(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	anySucceeded := false
	for _, t := range c.AllTypes() {
		for _, id := range c.AllResourcesOfType(t) {
			name, _ := c.GetResourceName(t, id)
			if err := decodeAndSave(c, t, id, outDir); err != nil {
				kind, _ := rderr.Of(err)
				fmt.Fprintf(os.Stderr, "%s %d %q: %s: %v\n", t, id, name, kind, err)
				continue
			}
			anySucceeded = true
		}
	}
	if !anySucceeded {
		os.Exit(1)
	}
	return nil
}
