// Package container indexes the Macintosh resource fork, Mohawk archive,
// and Dark Castle data file formats, presenting each as a unified
// (type, id) -> Resource lookup. Decompression of dcmp-flagged resources
// is lazy: it happens on fetch, never while indexing.
package container

// ResourceKey addresses one resource by its four-byte type tag and
// signed 16-bit id, the Mac resource-fork convention every container
// format in this package is normalized to.
type ResourceKey struct {
	Type string // always exactly 4 bytes
	ID   int16
}

// Resource is one decoded index entry: its name (a Pascal string from
// the resource-fork name table, empty for formats without names), its
// attribute byte, and its raw payload bytes.
type Resource struct {
	Type  string
	ID    int16
	Name  string
	Attrs uint8
	Bytes []byte
}

// attrCompressed is the resource-fork attrs bit meaning "this payload
// must first be decompressed by the dcmp resource named in its header".
const attrCompressed = 0x01

// IsCompressed reports whether this resource's payload must be run
// through a dcmp decompressor before use.
func (r Resource) IsCompressed() bool {
	return r.Attrs&attrCompressed != 0
}
