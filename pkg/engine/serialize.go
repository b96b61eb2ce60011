package engine

import (
	"encoding/json"
	"fmt"

	"github.com/Fepozopo/darkroom/pkg/semver"
)

// FormatVersion is the pipeline file format version written by Serialize.
// Restore accepts any file whose version shares this major.
const FormatVersion = "1.0.0"

type pipelineFile struct {
	Version    string          `json:"version"`
	Name       string          `json:"name"`
	Operations []OperationInfo `json:"operations"`
}

// Serialize produces the pipeline definition as JSON: the format version, the
// pipeline name, and the ordered (name, params) list. No pixel data and no
// function references are included; Restore re-resolves transforms by name.
func (p *Pipeline) Serialize() ([]byte, error) {
	f := pipelineFile{
		Version:    FormatVersion,
		Name:       p.name,
		Operations: p.Operations(),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize pipeline %q: %w", p.name, err)
	}
	return data, nil
}

// Restore reconstructs a pipeline from data produced by Serialize. Transform
// functions are resolved by operation name from registry; an unregistered
// name fails with ErrNotFound. Executing the restored pipeline against the
// input that produced the original output reproduces that output
// bit-identically, provided the registered transforms are unchanged.
func Restore(data []byte, registry map[string]TransformFunc) (*Pipeline, error) {
	var f pipelineFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	if f.Version != "" {
		v, err := semver.Parse(f.Version)
		if err != nil {
			return nil, fmt.Errorf("pipeline format version %q: %w", f.Version, err)
		}
		cur, err := semver.Parse(FormatVersion)
		if err != nil {
			return nil, err
		}
		if v.Major != cur.Major {
			return nil, fmt.Errorf("unsupported pipeline format version %s (want %d.x)", f.Version, cur.Major)
		}
	}
	p := NewPipeline(f.Name)
	for _, rec := range f.Operations {
		fn, ok := registry[rec.Name]
		if !ok {
			return nil, fmt.Errorf("operation %q is not registered: %w", rec.Name, ErrNotFound)
		}
		if err := p.AddOperation(rec.Name, fn, rec.Params); err != nil {
			return nil, err
		}
	}
	return p, nil
}
