package sui

import (
	"context"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Directory maps lower-cased validator addresses to display names, with a
// reverse name lookup for convenience. It is immutable after construction;
// refreshing means building a new one. An empty Directory is valid and puts
// classification into blind mode (raw addresses instead of names).
type Directory struct {
	byAddr map[string]string
	byName map[string]string
}

// EmptyDirectory returns a directory with no entries.
func EmptyDirectory() *Directory {
	return &Directory{
		byAddr: map[string]string{},
		byName: map[string]string{},
	}
}

// NewDirectory builds a directory from known address→name pairs, without
// touching the network. Used for fixtures and ad-hoc overrides.
func NewDirectory(entries map[string]string) *Directory {
	d := EmptyDirectory()
	for addr, name := range entries {
		if addr == "" || name == "" {
			continue
		}
		d.byAddr[strings.ToLower(addr)] = name
		d.byName[strings.ToLower(name)] = addr
	}
	return d
}

// BuildDirectory fetches the current validator set and indexes it by
// address and by name. A failed fetch yields an empty directory rather than
// an error: the pipeline degrades to blind mode instead of stopping.
// Validator names are not unique in the reverse direction; on collision the
// last entry wins.
func BuildDirectory(ctx context.Context, c *Client) *Directory {
	d := EmptyDirectory()

	state, err := c.LatestSystemState(ctx)
	if err != nil {
		return d
	}

	gjson.GetBytes(state, "activeValidators").ForEach(func(_, v gjson.Result) bool {
		addr := v.Get("suiAddress").String()
		name := v.Get("name").String()
		if addr == "" || name == "" {
			return true
		}
		d.byAddr[strings.ToLower(addr)] = name
		d.byName[strings.ToLower(name)] = addr
		return true
	})
	return d
}

// Resolve returns the display name for an address.
func (d *Directory) Resolve(addr string) (string, bool) {
	name, ok := d.byAddr[strings.ToLower(addr)]
	return name, ok
}

// AddressOf returns the address registered under a name.
func (d *Directory) AddressOf(name string) (string, bool) {
	addr, ok := d.byName[strings.ToLower(name)]
	return addr, ok
}

// Len returns the number of known validators.
func (d *Directory) Len() int { return len(d.byAddr) }

// Entry is one address/name pair.
type Entry struct {
	Address string
	Name    string
}

// Entries lists all validators sorted by name, for display.
func (d *Directory) Entries() []Entry {
	entries := make([]Entry, 0, len(d.byAddr))
	for addr, name := range d.byAddr {
		entries = append(entries, Entry{Address: addr, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Address < entries[j].Address
	})
	return entries
}
