package source

import (
	"fmt"

	"fortio.org/safecast"
)

// FilePool is the de-duplicated pool of file names referenced by source
// locations. It outlives every piece of IR built from the files it names,
// so Location.File handles stay valid for the lifetime of a compilation.
type FilePool struct {
	byID  []string
	index map[string]FileID
}

// NewFilePool creates an empty pool. Index 0 is reserved for NoFileID and
// resolves to the empty string.
func NewFilePool() *FilePool {
	return &FilePool{
		byID:  []string{""},
		index: map[string]FileID{"": NoFileID},
	}
}

// Intern returns the stable FileID for name, registering it on first use.
func (p *FilePool) Intern(name string) FileID {
	if id, ok := p.index[name]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(p.byID))
	if err != nil {
		panic(fmt.Errorf("file pool overflow: %w", err))
	}
	id := FileID(n)
	p.byID = append(p.byID, name)
	p.index[name] = id
	return id
}

// Name resolves a FileID back to its file name. Returns "" for an invalid
// or out-of-range ID.
func (p *FilePool) Name(id FileID) string {
	if int(id) >= len(p.byID) {
		return ""
	}
	return p.byID[id]
}

// Len reports how many distinct file names are interned, NoFileID's slot
// included.
func (p *FilePool) Len() int {
	return len(p.byID)
}
