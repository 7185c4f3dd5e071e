package trie

// Layout maps keyboard-position translations from Latin to Cyrillic,
// used to retry a failed lookup under the assumption the user typed a
// Cyrillic word with their keyboard still set to a Latin layout.
// Applied in order: KeymapUkrainian first, then KeymapRussian.
type Layout map[rune]rune

// Translate rewrites every rune of s present in the layout, leaving
// everything else untouched. Mirrors Python's str.translate used by the
// reference keyboard maps.
func (l Layout) Translate(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if repl, ok := l[r]; ok {
			runes[i] = repl
		}
	}
	return string(runes)
}

func mustLayout(from, to string) Layout {
	fr := []rune(from)
	tr := []rune(to)
	if len(fr) != len(tr) {
		panic("trie: layout table length mismatch")
	}
	m := make(Layout, len(fr))
	for i, r := range fr {
		m[r] = tr[i]
	}
	return m
}

// KeymapUkrainian is the Latin-QWERTY-to-Ukrainian-Cyrillic keyboard
// layout table, tried first on empty-result retry.
var KeymapUkrainian = mustLayout(
	`qwertyuiop[]\asdfghjkl;'zxcvbnm,./`,
	`йцукенгшщзхїґфівапролджєячсмитьбю.`,
)

// KeymapRussian is the Latin-QWERTY-to-Russian-Cyrillic keyboard layout
// table, tried second on empty-result retry.
var KeymapRussian = mustLayout(
	`qwertyuiop[]asdfghjkl;'zxcvbnm,./`,
	`йцукенгшщзхъфывапролджэячсмитьбю.`,
)

// Keymaps lists the layout tables in the fixed retry order required by
// the query pipeline: Ukrainian-Cyrillic first, then Russian-Cyrillic.
var Keymaps = []Layout{KeymapUkrainian, KeymapRussian}
