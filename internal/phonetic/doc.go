// Package phonetic decides which menu strings are worth translating and
// produces pinyin transliterations for them. A string is translatable when
// it contains at least one rune that is neither ASCII nor one of the few
// fullwidth punctuation marks menus mix into otherwise-Latin text.
package phonetic
