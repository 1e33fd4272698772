package judge

import (
	"sort"
	"strings"

	"github.com/Raiyyanpatel/PrepVerse/internal/common"
)

// Engine language ids are contractual constants tied to the deployed engine
// version and must not be renumbered without revalidating against its
// language catalogue.
var languageIDs = map[string]int{
	"c":          50,
	"cpp":        54,
	"java":       62,
	"javascript": 63,
	"python":     71,
}

// ResolveLanguage maps a user-facing language name to the engine's internal
// id. Lookup is case-insensitive; anything outside the closed table is
// rejected before an engine call is ever made.
func ResolveLanguage(name string) (int, error) {
	id, ok := languageIDs[strings.ToLower(name)]
	if !ok {
		return 0, common.Errorf("%w: %s", common.ErrUnsupportedLanguage, name)
	}
	return id, nil
}

func SupportedLanguages() []string {
	names := make([]string, 0, len(languageIDs))
	for name := range languageIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
