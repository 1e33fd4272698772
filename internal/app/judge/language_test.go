package judge_test

import (
	"testing"

	"github.com/Raiyyanpatel/PrepVerse/internal/app/judge"
	"github.com/Raiyyanpatel/PrepVerse/internal/common"

	"github.com/stretchr/testify/require"
)

func TestResolveLanguageKnown(t *testing.T) {
	cases := map[string]int{
		"c":          50,
		"cpp":        54,
		"java":       62,
		"javascript": 63,
		"python":     71,
		"Python":     71,
		"JAVA":       62,
		"JavaScript": 63,
	}
	for name, want := range cases {
		id, err := judge.ResolveLanguage(name)
		require.NoError(t, err, name)
		require.Equal(t, want, id, name)
	}
}

func TestResolveLanguageUnknown(t *testing.T) {
	for _, name := range []string{"", "go", "rust", "python3", "c++", "typescript"} {
		_, err := judge.ResolveLanguage(name)
		require.ErrorIs(t, err, common.ErrUnsupportedLanguage, name)
		if name != "" {
			require.Contains(t, err.Error(), name)
		}
	}
}

func TestSupportedLanguagesIsSorted(t *testing.T) {
	require.Equal(t, []string{"c", "cpp", "java", "javascript", "python"}, judge.SupportedLanguages())
}
