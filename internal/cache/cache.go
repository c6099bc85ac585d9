// Package cache persists compile results on disk, keyed by a digest of
// the exact inputs a compile depends on (source text, entry point,
// shader stage and model), so the CLI's build subcommand can skip
// re-running the whole pipeline for a shader that has not changed.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/project"
	"github.com/hlslc/frontend/internal/source"
)

const schemaVersion uint16 = 1

// Disk is a thread-safe, file-backed cache of compile results.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Note mirrors diag.Note with the file resolved to a name, so it survives
// a round trip through a fresh FilePool in a later process.
type Note struct {
	File string
	Line uint32
	Col  uint32
	Msg  string
}

// Diagnostic mirrors diag.Diagnostic with the file resolved to a name.
type Diagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	File     string
	Line     uint32
	Col      uint32
	Notes    []Note
}

// Payload is what gets serialized for one cached compile result.
type Payload struct {
	Schema      uint16
	Status      uint8
	Diagnostics []Diagnostic
}

// Open initializes a disk cache under the OS cache directory for app,
// honoring XDG_CACHE_HOME the way most Linux tools do.
func Open(app string) (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

func (c *Disk) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "results", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *Disk) Put(key project.Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	removeTemp := true
	defer func() {
		if removeTemp {
			_ = os.Remove(tmpName)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, p); err != nil {
		return err
	}
	removeTemp = false
	return nil
}

// Get deserializes the payload stored under key, if any. The bool result
// is false (with a nil error) on a cache miss.
func (c *Disk) Get(key project.Digest) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll invalidates every cached result, for use after a schema change
// or an explicit `hlslc build --clean-cache`.
func (c *Disk) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// ToPayload flattens a diagnostic bag into a serializable Payload,
// resolving every location's file id to a name up front since a FileID
// is only meaningful within the FilePool that produced it.
func ToPayload(files *source.FilePool, status diag.Status, items []diag.Diagnostic) *Payload {
	p := &Payload{Schema: schemaVersion, Status: uint8(status)}
	p.Diagnostics = make([]Diagnostic, len(items))
	for i, d := range items {
		p.Diagnostics[i] = Diagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			File:     files.Name(d.Loc.File),
			Line:     d.Loc.Line,
			Col:      d.Loc.Col,
		}
		p.Diagnostics[i].Notes = make([]Note, len(d.Notes))
		for j, n := range d.Notes {
			p.Diagnostics[i].Notes[j] = Note{
				File: files.Name(n.Loc.File), Line: n.Loc.Line, Col: n.Loc.Col, Msg: n.Msg,
			}
		}
	}
	return p
}

// Render formats a cached payload the same way diag.Render formats a live
// bag, so a cache hit and a cache miss print identically.
func (p *Payload) Render() string {
	var out string
	for _, d := range p.Diagnostics {
		out += fmt.Sprintf("%s:%d:%d: %s: %s\n", d.File, d.Line, d.Col, diag.Severity(d.Severity).String(), d.Message)
		for _, n := range d.Notes {
			out += fmt.Sprintf("%s:%d:%d: note: %s\n", n.File, n.Line, n.Col, n.Msg)
		}
	}
	return out
}
