package stagetransform

import (
	"fmt"

	"github.com/subtrans/core/internal/language"
)

// TranslationPrompt builds the Translator stage's system instruction,
// resolving source/target language codes to their display names where
// known and falling back to the raw code otherwise.
func TranslationPrompt(sourceCode, targetCode string) string {
	source := displayName(sourceCode)
	target := displayName(targetCode)
	return fmt.Sprintf(
		"Translate the subtitle content from %s to %s. Preserve all index lines and timestamp lines exactly; translate only the text content. Output valid SRT.",
		source, target,
	)
}

func displayName(code string) string {
	if lang, ok := language.GetLanguage(code); ok {
		return lang.Name
	}
	return code
}
