// Package trie implements the character-keyed prefix tree that backs
// geo name search: every whole word and every suffix of every indexed
// name, split apart so exact and substring lookups can share one walk.
package trie

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// folder performs Unicode-aware case folding, so multi-byte Cyrillic and
// title-cased input normalize the same way ASCII strings.ToLower would
// for plain Latin text.
var folder = cases.Fold()

// stripChars holds the punctuation characters removed outright during
// preprocessing; translateMap holds the single-character substitutions
// applied before the strip.
const stripChars = `{}()[]"'’,._<>:;!@#$%^&*+=`

var translateMap = map[rune]rune{
	'-': ' ',
	'ё': 'е',
	'ґ': 'г',
}

// latinCyrillicLookalikes maps Latin letters to their Cyrillic
// look-alikes, applied to a token only when it is not already fully
// ASCII-Latin — this resolves shared-glyph confusion (Latin "o" vs
// Cyrillic "о") without mangling genuinely Latin tokens.
var latinCyrillicLookalikes = map[rune]rune{
	'e': 'е', 't': 'т', 'i': 'і', 'o': 'о', 'p': 'р', 'a': 'а',
	'h': 'н', 'k': 'к', 'x': 'х', 'c': 'с', 'b': 'в', 'm': 'м',
}

func isASCIILatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// changeLatin applies the look-alike map to a token unless every rune in
// it is already ASCII-Latin.
func changeLatin(word string) string {
	allLatin := true
	for _, r := range word {
		if !isASCIILatin(r) {
			allLatin = false
			break
		}
	}
	if allLatin {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if repl, ok := latinCyrillicLookalikes[r]; ok {
			b.WriteRune(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// preprocessWords lowercases, strips punctuation, translates hyphens and
// select lookalike characters, and splits the result into non-empty
// whitespace-separated tokens. Identical rules are used for both add and
// lookup, per the trie's word preprocessing contract.
func preprocessWords(word string) []string {
	if word == "" {
		return nil
	}

	folded := folder.String(word)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if repl, ok := translateMap[r]; ok {
			b.WriteRune(repl)
			continue
		}
		if strings.ContainsRune(stripChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, changeLatin(f))
	}
	return out
}

// suffixes yields every non-empty suffix of word, starting with word
// itself (offset 0).
func suffixes(word string) []string {
	runes := []rune(word)
	out := make([]string, 0, len(runes))
	for i := range runes {
		out = append(out, string(runes[i:]))
	}
	return out
}
