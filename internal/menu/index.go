package menu

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

const indexFileName = "index.json"

// ShopInfo pulls the data.shop_info block out of a menu document and
// returns it together with its id. Menus scraped from different sources
// occasionally arrive without one; callers treat that as a per-file
// error, not a fatal one.
func ShopInfo(doc map[string]any) (string, map[string]any, error) {
	data, ok := doc["data"].(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("menu has no data object")
	}
	info, ok := data["shop_info"].(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("menu has no data.shop_info object")
	}

	switch id := info["id"].(type) {
	case string:
		return id, info, nil
	case json.Number:
		return id.String(), info, nil
	default:
		return "", nil, fmt.Errorf("shop_info has no usable id (got %T)", info["id"])
	}
}

// Index accumulates the shop_info of every successfully processed menu.
// One run produces one index; it is written once, after the last menu.
type Index struct {
	shops map[string]map[string]any
}

func NewIndex() *Index {
	return &Index{shops: make(map[string]map[string]any)}
}

// Add registers info under the given shop id. A later menu with the same
// id wins, matching how repeated JSON keys would behave anyway.
func (x *Index) Add(id string, info map[string]any) {
	x.shops[id] = info
}

func (x *Index) Len() int {
	return len(x.shops)
}

// WriteFile serializes the accumulated shops to index.json inside dir,
// replacing any index from a previous run.
func (x *Index) WriteFile(dir string) error {
	path := filepath.Join(dir, indexFileName)
	if err := WriteDocument(path, x.shops); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
