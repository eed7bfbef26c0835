package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pkt.systems/kubedeck/schema"
)

func TestStoreLoadMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, ok, err := store.Load("/home/x/.kube/config")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected missing snapshot")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	snapshot := StateSnapshot{
		Workspace: schema.WorkspaceSnapshot{
			Panels: []schema.PanelSnapshot{
				{
					ID: "p1",
					Tabs: []schema.TabSnapshot{
						{
							ID: "p1:minikube",
							Context: schema.ClusterContext{
								ID:       "minikube",
								Name:     "minikube",
								Provider: schema.ProviderLocal,
							},
							Active: true,
						},
					},
					ActiveContextID: "minikube",
					Active:          true,
				},
			},
			ActivePanelID:   "p1",
			SelectedContext: "minikube",
			TabHistory:      []schema.TabID{"p1:minikube"},
		},
		Theme: "gruvbox",
	}
	if err := store.Save("/home/x/.kube/config", snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load("/home/x/.kube/config")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected snapshot to exist")
	}
	if !reflect.DeepEqual(snapshot, got) {
		t.Fatalf("snapshot mismatch:\nwant: %+v\ngot:  %+v", snapshot, got)
	}
}

func TestStoreKeySanitization(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save("/home/x/.kube/config", StateSnapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}
	name := entries[0].Name()
	if filepath.Ext(name) != ".json" {
		t.Fatalf("expected json file, got %q", name)
	}
	for _, r := range name {
		if r == '/' {
			t.Fatalf("separator leaked into filename %q", name)
		}
	}
}

func TestStoreLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("write bad json: %v", err)
	}
	if _, _, err := store.Load("config"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
