package format

import "strings"

// mdV2Specials are the characters Telegram requires escaped in MarkdownV2 text.
const mdV2Specials = `_*[]()~` + "`" + `>#+-=|{}.!\`

var mdV2Replacer = buildReplacer()

func buildReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(mdV2Specials)*2)
	for _, r := range mdV2Specials {
		pairs = append(pairs, string(r), `\`+string(r))
	}
	return strings.NewReplacer(pairs...)
}

// EscapeMarkdownV2 escapes reserved MarkdownV2 punctuation in a single field.
// It must be applied per field, before assembly: escaping an assembled message
// would also neutralize the renderer's own bold/italic markers.
func EscapeMarkdownV2(text string) string {
	return mdV2Replacer.Replace(text)
}
