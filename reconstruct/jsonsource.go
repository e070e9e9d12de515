package reconstruct

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
)

// JSONSource reads a document's pages from a JSON array of PageInput values,
// the on-disk shape an external glyph/region extractor writes for a
// reconstruct run invoked from the command line. It is eager: the whole file
// is decoded up front, since Pipeline.Run buffers every page anyway.
type JSONSource struct {
	pages []PageInput
}

// NewJSONSource decodes path as a JSON array of PageInput.
func NewJSONSource(path string) (JSONSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return JSONSource{}, fmt.Errorf("reconstruct: open %q: %w", path, err)
	}
	defer f.Close()
	return decodeJSONSource(f, path)
}

func decodeJSONSource(r io.Reader, path string) (JSONSource, error) {
	var pages []PageInput
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return JSONSource{}, fmt.Errorf("reconstruct: decode %q: %w", path, err)
	}
	return JSONSource{pages: pages}, nil
}

func (s JSONSource) Pages() iter.Seq2[PageInput, error] {
	return func(yield func(PageInput, error) bool) {
		for _, p := range s.pages {
			if !yield(p, nil) {
				return
			}
		}
	}
}
