// Package checkpoint serializes susceptibility parameters as fixed-order
// numeric records in a flat chunked stream. The first field of every record
// is a model tag, which doubles as the dispatch key on restore, so writing a
// material stack and rebuilding it from the stream round-trips exactly.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seewhydee/meep/internal/noise"
	"github.com/seewhydee/meep/internal/susceptibility"
)

// Stream accumulates parameter records sequentially, tracking a running
// offset the way a chunked array writer does.
type Stream struct {
	data []float64
	off  int
}

func NewStream() *Stream { return &Stream{} }

// WriteChunk appends one record and advances the offset. Implements
// [susceptibility.ParamWriter].
func (s *Stream) WriteChunk(vals []float64) {
	s.data = append(s.data, vals...)
	s.off += len(vals)
}

// Data returns the raw numeric stream.
func (s *Stream) Data() []float64 { return s.data }

// Offset returns the running write position.
func (s *Stream) Offset() int { return s.off }

// Dump writes every term's parameters into the stream in insertion order,
// preserving reproducible checkpoint layout.
func Dump(terms []susceptibility.Susceptibility) *Stream {
	s := NewStream()
	for _, t := range terms {
		t.DumpParams(s)
	}
	return s
}

// Restore walks a numeric stream and rebuilds the terms it describes.
// Sigma maps are spatial data owned by the material setup; sigmaFor supplies
// the map for each restored term by identifier. src is used for noisy terms.
func Restore(data []float64, sigmaFor func(id int) *susceptibility.SigmaMap, src noise.Source) ([]susceptibility.Susceptibility, error) {
	terms := make([]susceptibility.Susceptibility, 0)
	for pos := 0; pos < len(data); {
		tag := int(data[pos])
		n := susceptibility.RecordLen(tag)
		if n == 0 || pos+n > len(data) {
			return nil, fmt.Errorf("checkpoint: bad record at offset %d (tag %d)", pos, tag)
		}
		rec := data[pos : pos+n]
		sigma := sigmaFor(int(rec[1]))
		t, err := susceptibility.FromRecord(rec, sigma, src)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		pos += n
	}
	return terms, nil
}

// Save persists a stream to disk as JSON.
func Save(path string, s *Stream) error {
	data, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a stream persisted by Save.
func Load(path string) (*Stream, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data []float64
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &Stream{data: data, off: len(data)}, nil
}
