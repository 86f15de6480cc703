package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/serialcheck/internal/digest"
)

func sampleRecord(t *testing.T, name string, data []byte) Record {
	t.Helper()
	rec, err := NewRecord(name, data, 2, digest.SHA256, "go1.25.7 (gc linux/amd64)", "Linux-6.8.0-amd64")
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return rec
}

func TestWriteLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	written := sampleRecord(t, "simple_int", []byte{0x18, 0x2a})

	path, err := store.Write("Linux", written)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(store.Root, "Linux", "simple_int.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	set, ok, err := store.Load("Linux")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported missing directory")
	}
	got, found := set["simple_int"]
	if !found {
		t.Fatalf("simple_int not loaded, got %v", set.Names())
	}
	if got != written {
		t.Errorf("loaded %+v, want %+v", got, written)
	}

	data, err := got.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\x18\x2a" {
		t.Errorf("Bytes() = % x", data)
	}
	if ok, err := got.Verify(); err != nil || !ok {
		t.Errorf("Verify() = %v, %v", ok, err)
	}
}

func TestWriteUsesIndentedJSON(t *testing.T) {
	store := NewStore(t.TempDir())
	path, err := store.Write("Other", sampleRecord(t, "x", []byte{0xf6}))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	for _, key := range []string{"test_case", "hash", "pickle_data_base64", "protocol", "python_version", "platform"} {
		if !strings.Contains(string(data), "\n  \""+key+"\": ") {
			t.Errorf("record file lacks key %q:\n%s", key, data)
		}
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	store := NewStore(t.TempDir())
	set, ok, err := store.Load("Windows")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || set != nil {
		t.Errorf("Load of missing dir = %v, %v", set, ok)
	}

	all, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("LoadAll = %v, want empty", all)
	}
}

func TestLoadRecursesAndSkipsOtherFiles(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Write("Linux", sampleRecord(t, "a", []byte{1})); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(store.Dir("Linux"), "old")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	rec := sampleRecord(t, "b", []byte{2})
	nestedStore := NewStore(store.Dir("Linux"))
	if _, err := nestedStore.Write("old", rec); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.Dir("Linux"), "README.txt"), []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}

	set, _, err := store.Load("Linux")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(set.Names(), ","); got != "a,b" {
		t.Errorf("loaded names = %s, want a,b", got)
	}
}

func TestLoadRejectsInvalidRecord(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not valid json{{{"},
		{"missing hash", `{"test_case":"x","pickle_data_base64":"","protocol":2,"python_version":"v","platform":"p"}`},
		{"uppercase hash", `{"test_case":"x","hash":"ABC","pickle_data_base64":"","protocol":2,"python_version":"v","platform":"p"}`},
		{"string protocol", `{"test_case":"x","hash":"ab","pickle_data_base64":"","protocol":"2","python_version":"v","platform":"p"}`},
		{"unknown algorithm", `{"test_case":"x","hash":"ab","pickle_data_base64":"","protocol":2,"python_version":"v","platform":"p","hash_algorithm":"md5"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())
			dir := store.Dir("Linux")
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, _, err := store.Load("Linux"); err == nil {
				t.Error("expected error for invalid record")
			}
		})
	}
}

func TestValidateAcceptsForeignRecord(t *testing.T) {
	// A record written without hash_algorithm, as older result directories are.
	data := []byte(`{
  "test_case": "simple_int",
  "hash": "2f9ca6b1e9f5e8c6e7ae1b5d5e0a2c0a4c8fbc8f3b3fb4a9f4a1a2d7e0c9b8a1",
  "pickle_data_base64": "gAWVAgAAAAAAAABLKi4=",
  "protocol": 5,
  "python_version": "3.12.3 (main, Apr 10 2024, 05:33:47) [GCC 13.2.0]",
  "platform": "Linux-6.8.0-45-generic-x86_64-with-glibc2.39"
}`)
	issues, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestClean(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, dir := range []string{"Linux", "Windows", "Other"} {
		if _, err := store.Write(dir, sampleRecord(t, "a", []byte{1})); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(store.Dir("Linux"), "nested", "deeper"), 0755); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Clean("Linux-6.8.0-amd64")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if strings.Join(removed, ",") != "Linux" {
		t.Errorf("removed = %v, want [Linux]", removed)
	}
	if _, err := os.Stat(store.Dir("Linux")); !os.IsNotExist(err) {
		t.Error("Linux directory still exists")
	}
	for _, dir := range []string{"Windows", "Other"} {
		if _, err := os.Stat(store.Dir(dir)); err != nil {
			t.Errorf("%s directory was touched: %v", dir, err)
		}
	}
}

func TestCleanOtherPlatformKeepsOther(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Write("Other", sampleRecord(t, "a", []byte{1})); err != nil {
		t.Fatal(err)
	}

	// A macOS descriptor writes to Other but does not contain "Other".
	removed, err := store.Clean("Darwin-23.1.0-arm64")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	if _, err := os.Stat(store.Dir("Other")); err != nil {
		t.Errorf("Other directory was removed: %v", err)
	}
}

func TestCleanMissingDirectory(t *testing.T) {
	store := NewStore(t.TempDir())
	removed, err := store.Clean("Linux")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
}

func TestRecordAlgorithmDefault(t *testing.T) {
	if got := (Record{}).Algorithm(); got != digest.SHA256 {
		t.Errorf("Algorithm() = %q, want sha256", got)
	}
	if got := (Record{HashAlgorithm: "blake3"}).Algorithm(); got != digest.BLAKE3 {
		t.Errorf("Algorithm() = %q, want blake3", got)
	}
}
