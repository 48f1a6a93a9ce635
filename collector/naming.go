package collector

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wippyai/msgpack-codegen/metadata"
)

const nameCacheSize = 4096

type typeNames struct {
	full    string
	display string
}

// nameCache memoizes rendered type names. The walker renders the same
// argument and member types many times over a large universe.
type nameCache struct {
	cache *lru.Cache[*metadata.Type, typeNames]
}

func newNameCache() (*nameCache, error) {
	c, err := lru.New[*metadata.Type, typeNames](nameCacheSize)
	if err != nil {
		return nil, err
	}
	return &nameCache{cache: c}, nil
}

func (n *nameCache) lookup(t *metadata.Type) typeNames {
	if v, ok := n.cache.Get(t); ok {
		return v
	}
	v := typeNames{full: t.FullName(), display: t.String()}
	n.cache.Add(t, v)
	return v
}

func (n *nameCache) fullName(t *metadata.Type) string {
	return n.lookup(t).full
}

func (n *nameCache) display(t *metadata.Type) string {
	return n.lookup(t).display
}

func (n *nameCache) fullNames(ts []*metadata.Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = n.fullName(t)
	}
	return out
}
