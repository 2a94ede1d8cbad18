// Package processor drives the whole enrichment run: discover menu
// files, and for each one collect its translatable strings, translate
// them in a single batch, then rewrite every collected string as an
// enriched record carrying pinyin, the translation, and, for priced
// items, Google knowledge panel and image results. One failing menu
// never stops the run; failures are logged and the next file is taken.
package processor
