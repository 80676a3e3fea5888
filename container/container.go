package container

import (
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/retrodasm/resourcedasm/rderr"
)

// Decompressor resolves a compressed resource's dcmp indirection: given
// the dcmp resource's id and the compressed payload (header stripped),
// it returns the decompressed bytes. Real resource forks name 68K code
// resources here; running that code is the embedded-emulator external
// collaborator this package does not implement, so every compressed
// resource requires a caller-supplied Decompressor.
type Decompressor interface {
	Decompress(dcmpID int16, payload []byte) ([]byte, error)
}

// Options controls container construction.
type Options struct {
	// Decompressor resolves the dcmp indirection of every compressed
	// resource; the container has no builtin decompressors. May be nil
	// if the source has no compressed resources.
	Decompressor Decompressor
	Logger       log.Logger
}

// Container is a read-only index over a resource fork, Mohawk archive,
// or Dark Castle data file, presenting (type, id) -> Resource lookup.
// Decompression is lazy and cached per (type, id).
type Container struct {
	entries map[ResourceKey]Resource
	order   []ResourceKey

	opts   *Options
	logger *log.Helper

	mu    sync.Mutex
	cache map[ResourceKey][]byte
}

func newContainer(opts *Options) *Container {
	if opts == nil {
		opts = &Options{}
	}
	var logger *log.Helper
	if opts.Logger != nil {
		logger = log.NewHelper(opts.Logger)
	} else {
		logger = log.NewHelper(log.NewFilter(log.DefaultLogger, log.FilterLevel(log.LevelError)))
	}
	return &Container{
		entries: make(map[ResourceKey]Resource),
		opts:    opts,
		logger:  logger,
		cache:   make(map[ResourceKey][]byte),
	}
}

func (c *Container) add(r Resource) {
	key := ResourceKey{Type: r.Type, ID: r.ID}
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = r
}

// AllTypes returns every distinct resource type in the container, in
// first-seen order.
func (c *Container) AllTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, key := range c.order {
		if !seen[key.Type] {
			seen[key.Type] = true
			types = append(types, key.Type)
		}
	}
	return types
}

// AllResourcesOfType returns the ids of every resource of the given type,
// in first-seen order.
func (c *Container) AllResourcesOfType(t string) []int16 {
	var ids []int16
	for _, key := range c.order {
		if key.Type == t {
			ids = append(ids, key.ID)
		}
	}
	return ids
}

// AllResources returns every (type, id) pair in the container.
func (c *Container) AllResources() []ResourceKey {
	out := make([]ResourceKey, len(c.order))
	copy(out, c.order)
	return out
}

// ResourceExists reports whether (t, id) is indexed.
func (c *Container) ResourceExists(t string, id int16) bool {
	_, ok := c.entries[ResourceKey{Type: t, ID: id}]
	return ok
}

// ResourceIsCompressed reports whether the resource at (t, id) carries
// the dcmp-compression attribute flag.
func (c *Container) ResourceIsCompressed(t string, id int16) (bool, error) {
	r, ok := c.entries[ResourceKey{Type: t, ID: id}]
	if !ok {
		return false, rderr.Newf(rderr.KindMissingResource, "resource %s/%d not found", t, id)
	}
	return r.IsCompressed(), nil
}

// GetResourceName returns the resource's Pascal-string name, empty for
// container formats (Mohawk, Dark Castle) that carry no name table.
func (c *Container) GetResourceName(t string, id int16) (string, error) {
	r, ok := c.entries[ResourceKey{Type: t, ID: id}]
	if !ok {
		return "", rderr.Newf(rderr.KindMissingResource, "resource %s/%d not found", t, id)
	}
	return r.Name, nil
}

// GetResourceData returns the resource's raw or decompressed payload.
// When decompress is false, the stored bytes are returned verbatim
// (still including the dcmp header if compressed). When true and the
// resource is compressed, the result is decompressed and cached.
func (c *Container) GetResourceData(t string, id int16, decompress bool) ([]byte, error) {
	key := ResourceKey{Type: t, ID: id}
	r, ok := c.entries[key]
	if !ok {
		return nil, rderr.Newf(rderr.KindMissingResource, "resource %s/%d not found", t, id)
	}
	if !decompress || !r.IsCompressed() {
		return r.Bytes, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.cache[key]; ok {
		return cached, nil
	}

	out, err := c.decompressResource(r)
	if err != nil {
		return nil, err
	}
	c.cache[key] = out
	return out, nil
}

// GetResource returns the full Resource record, triggering decompression
// of the payload if the resource is flagged as compressed.
func (c *Container) GetResource(t string, id int16) (Resource, error) {
	r, ok := c.entries[ResourceKey{Type: t, ID: id}]
	if !ok {
		return Resource{}, rderr.Newf(rderr.KindMissingResource, "resource %s/%d not found", t, id)
	}
	data, err := c.GetResourceData(t, id, true)
	if err != nil {
		return Resource{}, err
	}
	r.Bytes = data
	return r, nil
}
