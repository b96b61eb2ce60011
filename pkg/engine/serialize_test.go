package engine

import (
	"encoding/json"
	"errors"
	"image/color"
	"strings"
	"testing"
)

func testRegistry() map[string]TransformFunc {
	return map[string]TransformFunc{
		"invert": invertTransform,
		"shift":  shiftTransform,
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	p := NewPipeline("edit session")
	if err := p.AddOperation("shift", shiftTransform, Params{"delta": 12.5, "note": "warmup"}); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	if err := p.AddOperation("invert", invertTransform, nil); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}

	data, err := p.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	restored, err := Restore(data, testRegistry())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Name() != p.Name() {
		t.Fatalf("restored name = %q; want %q", restored.Name(), p.Name())
	}
	if restored.State() != StateConfigured {
		t.Fatalf("restored state = %v; want configured", restored.State())
	}

	want := p.Operations()
	got := restored.Operations()
	if len(got) != len(want) {
		t.Fatalf("restored %d operations; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i].Name {
			t.Fatalf("op %d name = %q; want %q", i, got[i].Name, want[i].Name)
		}
		if len(got[i].Params) != len(want[i].Params) {
			t.Fatalf("op %d has %d params; want %d", i, len(got[i].Params), len(want[i].Params))
		}
		for k, v := range want[i].Params {
			if got[i].Params[k] != v {
				t.Fatalf("op %d param %q = %v; want %v", i, k, got[i].Params[k], v)
			}
		}
	}

	// both pipelines must produce identical pixels
	in := solidImage(3, 3, color.NRGBA{R: 60, G: 70, B: 80, A: 255})
	a, err := p.Execute(in, false)
	if err != nil {
		t.Fatalf("Execute original: %v", err)
	}
	b, err := restored.Execute(in, false)
	if err != nil {
		t.Fatalf("Execute restored: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("restored pipeline produced different pixels")
	}
}

func TestSerializeFormat(t *testing.T) {
	p := NewPipeline("fmt")
	if err := p.AddOperation("invert", invertTransform, nil); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	data, err := p.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["version"] != FormatVersion {
		t.Fatalf("version = %v; want %q", doc["version"], FormatVersion)
	}
	if _, ok := doc["operations"]; !ok {
		t.Fatalf("serialized document has no operations field")
	}
}

func TestRestoreUnknownOperation(t *testing.T) {
	data := []byte(`{
		"version": "1.0.0",
		"name": "bad",
		"operations": [{"name": "does_not_exist", "params": {}}]
	}`)
	_, err := Restore(data, testRegistry())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Restore with unknown op = %v; want ErrNotFound", err)
	}
}

func TestRestoreVersionGate(t *testing.T) {
	data := []byte(`{
		"version": "2.0.0",
		"name": "future",
		"operations": []
	}`)
	_, err := Restore(data, testRegistry())
	if err == nil {
		t.Fatalf("Restore accepted a newer major format version")
	}
	if !strings.Contains(err.Error(), "unsupported pipeline format version") {
		t.Fatalf("unexpected error: %v", err)
	}

	// same major, newer minor is fine
	data = []byte(`{"version": "1.9.0", "name": "ok", "operations": []}`)
	if _, err := Restore(data, testRegistry()); err != nil {
		t.Fatalf("Restore rejected a same-major version: %v", err)
	}
}

func TestRestoreMalformed(t *testing.T) {
	if _, err := Restore([]byte("{not json"), testRegistry()); err == nil {
		t.Fatalf("Restore accepted malformed JSON")
	}
	if _, err := Restore([]byte(`{"version": "one", "operations": []}`), testRegistry()); err == nil {
		t.Fatalf("Restore accepted an unparseable version")
	}
}
