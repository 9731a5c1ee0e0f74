package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/valenz/internal/elements"
)

const systemPrompt = `You are a concise chemistry tutor helping a student memorize the common valences of chemical elements. Answer in plain text without markdown.`

func buildUserMessage(e elements.Element) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Element: %s (%s), atomic number %d\n", e.Name, e.Symbol, e.Atomic)
	fmt.Fprintf(&b, "Group: %s\n", e.Group.DisplayName())
	fmt.Fprintf(&b, "Common valences (Roman numerals): %s\n", e.Valency)
	if len(e.WrongValences) > 0 {
		fmt.Fprintf(&b, "Answers students often confuse it with: %s\n", strings.Join(e.WrongValences, "; "))
	}

	b.WriteString(`
Instructions:
1. Explain in 2-4 sentences why the element shows exactly these valences. Refer to its outer electrons.
2. Give one short mnemonic that helps tell the right answer apart from the confusable ones.
3. Write valences as Roman numerals, as above.`)

	return b.String()
}
