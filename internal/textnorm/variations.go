package textnorm

import (
	"maps"
	"slices"
	"strings"
)

// CommonVariations lists spellings of text that users commonly write
// interchangeably: ة/ه, hamza-carrying alefs, and ى/ي. The original text is
// always included. The result is deduplicated and sorted by code point.
func CommonVariations(text string) []string {
	set := map[string]struct{}{text: {}}

	if strings.ContainsRune(text, tehMarbuta) {
		set[strings.ReplaceAll(text, string(tehMarbuta), string(heh))] = struct{}{}
	}

	if base, ok := strings.CutSuffix(text, string(heh)); ok {
		set[base+string(tehMarbuta)] = struct{}{}
	}

	if strings.ContainsAny(text, string([]rune{alefHamzaAbove, alefHamzaBelow, alefMadda})) {
		r := strings.NewReplacer(
			string(alefHamzaAbove), string(alef),
			string(alefHamzaBelow), string(alef),
			string(alefMadda), string(alef),
		)
		set[r.Replace(text)] = struct{}{}
	}

	if strings.ContainsRune(text, alefMaksura) {
		set[strings.ReplaceAll(text, string(alefMaksura), string(yeh))] = struct{}{}
	}

	if base, ok := strings.CutSuffix(text, string(yeh)); ok {
		set[base+string(alefMaksura)] = struct{}{}
	}

	return slices.Sorted(maps.Keys(set))
}
