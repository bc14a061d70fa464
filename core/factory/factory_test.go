package factory

import (
	"reflect"
	"testing"
)

type estimator struct{ Source string }

type estimatorConf struct {
	Source string `json:"source"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*estimator]()
	if err := reg.Register("fixed", func(conf map[string]any) (*estimator, error) {
		var c estimatorConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &estimator{Source: c.Source}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "fixed", Conf: map[string]any{"source": "table"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Source != "table" {
		t.Fatalf("expected table got %s", inst.Source)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"beta", "alpha"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Fatalf("expected sorted names got %v", got)
	}
}
