package menu

// Record is what a translatable menu string becomes after processing. The
// original text survives in Value; every other field is attached only when
// the corresponding enrichment produced something, so an untranslated
// record still marshals without empty keys.
type Record struct {
	Value          string `json:"value"`
	Pinyin         string `json:"pinyin,omitempty"`
	Translation    string `json:"translation,omitempty"`
	KnowledgeGraph string `json:"knowledge_graph,omitempty"`
	GoogleImage    string `json:"google_image,omitempty"`
}
