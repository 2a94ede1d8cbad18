package processor

import (
	"context"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/menugloss/menugloss/internal/jsonwalk"
	"github.com/menugloss/menugloss/internal/menu"
	"github.com/menugloss/menugloss/internal/phonetic"
	"github.com/menugloss/menugloss/internal/translation"
)

var log = logging.Logger("menugloss/processor")

// Searcher answers the two web lookups made for a priced menu item.
type Searcher interface {
	KnowledgeGraph(ctx context.Context, query string) (string, error)
	Image(ctx context.Context, query string) (string, error)
}

// Config wires a Driver.
type Config struct {
	MenusDir   string
	Translator translation.Translator

	// Searcher handles the price-triggered lookups; nil skips them.
	Searcher Searcher

	// SearchDelay is the pause after each pair of lookups, keeping the
	// query rate tolerable for the search endpoint.
	SearchDelay time.Duration
}

// Driver processes every menu in a directory and accumulates their
// shop_info blocks for the final index.
type Driver struct {
	cfg   Config
	index *menu.Index
}

func New(cfg Config) *Driver {
	return &Driver{cfg: cfg, index: menu.NewIndex()}
}

// Run processes each discovered menu in order, then writes the shop
// index. Per-file failures are logged and skipped; Run only fails when
// the menus directory itself cannot be scanned.
func (d *Driver) Run(ctx context.Context) error {
	paths, err := menu.Discover(d.cfg.MenusDir)
	if err != nil {
		return err
	}
	log.Infof("Found %d menus in %s", len(paths), d.cfg.MenusDir)

	for i, path := range paths {
		log.Infof("Processing %s (%d/%d)", path, i+1, len(paths))
		if err := d.processMenu(ctx, path); err != nil {
			log.Errorf("Failed processing %s: %s", path, err)
		}
	}

	if err := d.index.WriteFile(d.cfg.MenusDir); err != nil {
		log.Errorf("Failed writing shop index: %s", err)
	}
	return nil
}

func (d *Driver) processMenu(ctx context.Context, path string) error {
	doc, err := menu.Load(path)
	if err != nil {
		return err
	}

	id, info, err := menu.ShopInfo(doc)
	if err != nil {
		return err
	}
	// The index holds a reference, not a copy, so the enrichment below
	// shows up in index.json too.
	d.index.Add(id, info)

	d.enrich(ctx, doc)

	return menu.WriteDocument(menu.OutputPath(path), doc)
}

// translatable selects string leaves carrying text beyond ASCII and the
// few fullwidth marks that count as ASCII for menu purposes.
func translatable(v jsonwalk.Visit) bool {
	s, ok := v.Value.(string)
	return ok && phonetic.Translatable(s)
}

// enrich replaces every translatable string in doc with a Record. The
// positions collected up front are rewritten through their containers,
// so a single walk serves both the batch translation and the mutation.
func (d *Driver) enrich(ctx context.Context, doc map[string]any) {
	visits := jsonwalk.Collect(doc, translatable)
	if len(visits) == 0 {
		return
	}

	texts := make([]string, len(visits))
	for i, v := range visits {
		texts[i] = v.Value.(string)
	}

	translations := d.translate(ctx, texts)

	for j, v := range visits {
		log.Infof("%d / %d", j+1, len(texts))

		value := v.Value.(string)
		rec := &menu.Record{Value: value}
		v.Replace(rec)

		if p := phonetic.Pinyin(phonetic.Projection(value)); p != "" {
			rec.Pinyin = p
		}

		if _, priced := v.Sibling("price"); priced && d.cfg.Searcher != nil {
			d.lookUp(ctx, value, rec)
		}

		// Translations align with texts by position. When the batch
		// failed there are none and records go out without one.
		if j < len(translations) {
			rec.Translation = translations[j]
		}
	}
}

func (d *Driver) translate(ctx context.Context, texts []string) []string {
	if d.cfg.Translator == nil {
		return nil
	}
	translations, err := d.cfg.Translator.Translate(ctx, texts)
	if err != nil {
		log.Errorf("Translation failed, records will carry no translations: %s", err)
		return nil
	}
	return translations
}

func (d *Driver) lookUp(ctx context.Context, value string, rec *menu.Record) {
	kg, err := d.cfg.Searcher.KnowledgeGraph(ctx, value)
	if err != nil {
		log.Errorf("Knowledge graph lookup failed for %q: %s", value, err)
	} else if kg != "" {
		rec.KnowledgeGraph = kg
	}

	img, err := d.cfg.Searcher.Image(ctx, value)
	if err != nil {
		log.Errorf("Image lookup failed for %q: %s", value, err)
	} else if img != "" {
		rec.GoogleImage = img
	}

	if d.cfg.SearchDelay > 0 {
		time.Sleep(d.cfg.SearchDelay)
	}
}
