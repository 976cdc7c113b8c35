package tags

import (
	"fmt"
	"path/filepath"
)

// StubReader serves canned tags keyed by base filename. Tests use it in
// place of the container decoders.
type StubReader struct {
	Tags map[string]Tags
	Errs map[string]error
}

func (r *StubReader) ReadTags(path string) (Tags, error) {
	name := filepath.Base(path)
	if r.Errs != nil {
		if err, ok := r.Errs[name]; ok {
			return Tags{}, fmt.Errorf("stub read %s: %w", name, err)
		}
	}
	if r.Tags != nil {
		if t, ok := r.Tags[name]; ok {
			return t, nil
		}
	}
	return Tags{}, nil
}
