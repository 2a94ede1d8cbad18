// Package menu reads and writes restaurant menu documents. A menu is an
// arbitrary JSON object with a data.shop_info block; the rest of the
// document has no fixed schema. Processed documents are written beside
// their inputs, and every run aggregates the shop_info blocks it saw into
// a single index.json.
package menu
