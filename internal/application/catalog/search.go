package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/viajespy/agencia-api/internal/domain/entity"
)

// fold pasa a minúsculas y quita tildes: "Encarnación" -> "encarnacion".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// matchPackages filtra por todos los términos de q sobre nombre, descripción, ciudad y país.
// Un q vacío devuelve la lista completa.
func matchPackages(pkgs []entity.TravelPackage, q string) []entity.TravelPackage {
	terms := strings.Fields(fold(q))
	if len(terms) == 0 {
		return pkgs
	}
	out := make([]entity.TravelPackage, 0, len(pkgs))
	for _, p := range pkgs {
		haystack := fold(strings.Join([]string{p.Name, p.Description, p.City, p.Country}, " "))
		ok := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}
