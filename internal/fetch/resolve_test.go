// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/macromol/getpdb/pkg/types"
)

func TestDefaultType(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"single char", "1", "sdf"},
		{"three char ligand code", "ATP", "sdf"},
		{"four char pdb id", "1lyz", "cif"},
		{"uniprot accession", "P00698", "cif"},
		{"empty", "", "sdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultType(tt.identifier); got != tt.want {
				t.Errorf("DefaultType(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestRegistryOrder(t *testing.T) {
	want := []string{"rcsb", "rcsb-ligand", "pubchem", "alphafold"}
	hosts := Registry(nil)
	if len(hosts) != len(want) {
		t.Fatalf("len(hosts) = %d, want %d", len(hosts), len(want))
	}
	for i, h := range hosts {
		if h.Name() != want[i] {
			t.Errorf("hosts[%d].Name() = %q, want %q", i, h.Name(), want[i])
		}
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		host     Host
		fileType string
		want     bool
	}{
		{&ArchiveHost{}, "cif", true},
		{&ArchiveHost{}, "CIF", true},
		{&ArchiveHost{}, "sdf", false},
		{&LigandHost{}, "mol2", true},
		{&PubChemHost{}, "asnt", true},
		{&PubChemHost{}, "pdb", false},
		{&AlphaFoldHost{}, "bcif", true},
		{&AlphaFoldHost{}, "sdf", false},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("%s/%s", tt.host.Name(), tt.fileType)
		t.Run(name, func(t *testing.T) {
			if got := Supports(tt.host, tt.fileType); got != tt.want {
				t.Errorf("Supports(%s, %q) = %v, want %v", tt.host.Name(), tt.fileType, got, tt.want)
			}
		})
	}
}

// fakeHost records fetch calls so tests can assert which hosts were
// contacted and in what order.
type fakeHost struct {
	name   string
	caps   []string
	lines  []string
	err    error
	calls  int
	record *[]string
}

func (h *fakeHost) Name() string           { return h.name }
func (h *fakeHost) Capabilities() []string { return h.caps }

func (h *fakeHost) Fetch(ctx context.Context, identifier, fileType string, cfg types.FetchConfig) ([]string, error) {
	h.calls++
	if h.record != nil {
		*h.record = append(*h.record, h.name)
	}
	return h.lines, h.err
}

func TestResolveFirstSuccessStops(t *testing.T) {
	first := &fakeHost{name: "first", caps: []string{"cif"}, lines: []string{"payload"}}
	second := &fakeHost{name: "second", caps: []string{"cif"}, lines: []string{"other"}}

	lines, host, err := Resolve(context.Background(), "1lyz", "cif",
		[]Host{first, second}, types.FetchConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if host != "first" {
		t.Errorf("host = %q, want %q", host, "first")
	}
	if len(lines) != 1 || lines[0] != "payload" {
		t.Errorf("lines = %v, want [payload]", lines)
	}
	if second.calls != 0 {
		t.Errorf("second host contacted %d times, want 0", second.calls)
	}
}

func TestResolveSkipsUnsupportedWithoutContact(t *testing.T) {
	unsupported := &fakeHost{name: "archive", caps: []string{"cif", "pdb"}}
	supported := &fakeHost{name: "compound", caps: []string{"sdf"}, lines: []string{"payload"}}

	_, host, err := Resolve(context.Background(), "962", "sdf",
		[]Host{unsupported, supported}, types.FetchConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if host != "compound" {
		t.Errorf("host = %q, want %q", host, "compound")
	}
	if unsupported.calls != 0 {
		t.Errorf("unsupported host contacted %d times, want 0", unsupported.calls)
	}
}

func TestResolveFallsBackOnError(t *testing.T) {
	failing := &fakeHost{name: "failing", caps: []string{"cif"}, err: errors.New("HTTP 404")}
	working := &fakeHost{name: "working", caps: []string{"cif"}, lines: []string{"payload"}}

	_, host, err := Resolve(context.Background(), "1lyz", "cif",
		[]Host{failing, working}, types.FetchConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if host != "working" {
		t.Errorf("host = %q, want %q", host, "working")
	}
	if failing.calls != 1 {
		t.Errorf("failing host contacted %d times, want 1", failing.calls)
	}
}

func TestResolveAllHostsExhausted(t *testing.T) {
	a := &fakeHost{name: "a", caps: []string{"cif"}, err: errors.New("HTTP 404")}
	b := &fakeHost{name: "b", caps: []string{"pdb"}} // skipped: wrong type

	_, _, err := Resolve(context.Background(), "0xxx", "cif",
		[]Host{a, b}, types.FetchConfig{}, zerolog.Nop())
	if !errors.Is(err, ErrAllHostsExhausted) {
		t.Fatalf("err = %v, want ErrAllHostsExhausted", err)
	}
	if b.calls != 0 {
		t.Errorf("skipped host contacted %d times, want 0", b.calls)
	}
}

func TestResolveOrderDeterministic(t *testing.T) {
	var order []string
	mk := func(name string) *fakeHost {
		return &fakeHost{name: name, caps: []string{"cif"}, err: errors.New("down"), record: &order}
	}
	hosts := []Host{mk("a"), mk("b"), mk("c")}

	for run := 0; run < 3; run++ {
		order = order[:0]
		Resolve(context.Background(), "1lyz", "cif", hosts, types.FetchConfig{}, zerolog.Nop())
		if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
			t.Fatalf("run %d: contact order = %v, want [a b c]", run, order)
		}
	}
}
