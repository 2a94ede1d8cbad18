package menu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/menugloss/menugloss/internal/testutil"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "b.json"), "{}")
	testutil.WriteFile(t, filepath.Join(dir, "a.json"), "{}")
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), "ignore me")
	testutil.WriteFile(t, filepath.Join(dir, "index.json"), "{}")
	testutil.WriteFile(t, filepath.Join(dir, "menu.a-processed.json"), "{}")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	testutil.WriteFile(t, filepath.Join(sub, "c.json"), "{}")

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Discover() = %v, want %v", paths, want)
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	paths, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Discover() = %v, want none", paths)
	}
}

func TestLoadKeepsNumbersExact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.json")
	testutil.WriteFile(t, path, `{"price": 88, "rating": 4.5}`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	price, ok := doc["price"].(json.Number)
	if !ok {
		t.Fatalf("price decoded as %T, want json.Number", doc["price"])
	}
	if price.String() != "88" {
		t.Errorf("price = %q, want 88", price.String())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	testutil.WriteFile(t, broken, `{"data": `)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"invalid json", broken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"duck.json", "menu.duck-processed.json"},
		{filepath.Join("menus", "duck.json"), filepath.Join("menus", "menu.duck-processed.json")},
		{filepath.Join("/data", "shop1.json"), filepath.Join("/data", "menu.shop1-processed.json")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.path); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	doc := map[string]any{
		"name":  "烤鸭 & more",
		"price": json.Number("88"),
	}
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	if !strings.Contains(got, "\n    \"name\"") {
		t.Errorf("output not indented with four spaces:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("output missing trailing newline")
	}
	if strings.Contains(got, `\u0026`) || !strings.Contains(got, "烤鸭 & more") {
		t.Errorf("output HTML-escaped:\n%s", got)
	}
	if !strings.Contains(got, `"price": 88`) {
		t.Errorf("integer price not preserved:\n%s", got)
	}
}

func TestWriteDocumentRecordOmitsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.json")

	if err := WriteDocument(path, &Record{Value: "你好", Pinyin: "nǐ hǎo"}); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, absent := range []string{"translation", "knowledge_graph", "google_image"} {
		if strings.Contains(string(data), absent) {
			t.Errorf("empty field %q serialized:\n%s", absent, data)
		}
	}
}

func TestShopInfo(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]any
		wantID  string
		wantErr bool
	}{
		{
			name: "string id",
			doc: map[string]any{
				"data": map[string]any{
					"shop_info": map[string]any{"id": "s1", "name": "烤鸭店"},
				},
			},
			wantID: "s1",
		},
		{
			name: "numeric id",
			doc: map[string]any{
				"data": map[string]any{
					"shop_info": map[string]any{"id": json.Number("42")},
				},
			},
			wantID: "42",
		},
		{
			name:    "no data",
			doc:     map[string]any{"menu": []any{}},
			wantErr: true,
		},
		{
			name:    "no shop_info",
			doc:     map[string]any{"data": map[string]any{}},
			wantErr: true,
		},
		{
			name: "no id",
			doc: map[string]any{
				"data": map[string]any{"shop_info": map[string]any{"name": "x"}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, info, err := ShopInfo(tt.doc)
			if tt.wantErr {
				if err == nil {
					t.Error("ShopInfo() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ShopInfo() error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if info == nil {
				t.Error("info = nil, want shop_info object")
			}
		})
	}
}

func TestIndexWriteFile(t *testing.T) {
	dir := t.TempDir()

	idx := NewIndex()
	idx.Add("s2", map[string]any{"id": "s2", "name": "second"})
	idx.Add("s1", map[string]any{"id": "s1"})
	idx.Add("s2", map[string]any{"id": "s2", "name": "second again"})

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if err := idx.WriteFile(dir); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("index.json invalid: %v", err)
	}
	if got["s2"]["name"] != "second again" {
		t.Errorf("later shop_info did not win: %v", got["s2"])
	}
	if _, ok := got["s1"]; !ok {
		t.Error("s1 missing from index")
	}
}

func TestIndexWriteFileEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := NewIndex().WriteFile(dir); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("empty index = %q, want {}", data)
	}
}
