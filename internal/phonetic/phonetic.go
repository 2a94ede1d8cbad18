package phonetic

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// effectivelyASCII holds non-ASCII code points treated as ASCII for
// selection: a left single quotation mark, the fullwidth parenthesis pair
// and the fullwidth comma. Menus use these as plain punctuation around
// Latin text, so they alone never make a string translatable.
var effectivelyASCII = map[rune]bool{
	'‘': true, // ‘
	'（': true, // （
	'）': true, // ）
	'，': true, // ，
}

// EffectivelyASCII reports whether every rune of s is ASCII or one of the
// allow-listed punctuation marks. The empty string is effectively ASCII.
func EffectivelyASCII(s string) bool {
	for _, r := range s {
		if r < 0x80 || effectivelyASCII[r] {
			continue
		}
		return false
	}
	return true
}

// Translatable reports whether s should be sent for translation: true iff
// it contains at least one rune that is not effectively ASCII.
func Translatable(s string) bool {
	return !EffectivelyASCII(s)
}

// Projection returns the transliteration input for s: every ASCII and
// allow-listed rune removed, surrounding whitespace trimmed. An empty
// projection means s has nothing to transliterate.
func Projection(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x80 && !effectivelyASCII[r] {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Pinyin returns the tone-marked pinyin of the Han runes in s, syllables
// joined by single spaces. Runes without a pinyin reading are skipped, so
// punctuation-only input yields the empty string.
func Pinyin(s string) string {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	return strings.Join(pinyin.LazyPinyin(s, args), " ")
}
