package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify deriva o slug de uma unidade a partir do nome: remove acentos,
// passa para minúsculas, descarta pontuação e troca espaços por hífens.
// É idempotente; unicidade NÃO é garantida (nomes que diferem só por
// caixa ou pontuação colapsam no mesmo slug).
func Slugify(nome string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ := transform.String(t, strings.TrimSpace(nome))
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
		// demais runas (pontuação etc.) são descartadas
	}

	return strings.TrimSuffix(b.String(), "-")
}
