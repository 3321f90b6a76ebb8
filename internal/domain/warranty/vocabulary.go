// Package warranty contiene las reglas del ciclo de vida de una garantía que no
// dependen de persistencia: el vocabulario sugerido de estados.
//
// El estado es texto libre; no existe grafo de transiciones. El vocabulario solo
// sirve para que las interfaces ofrezcan opciones consistentes.
package warranty

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// DefaultStatuses vocabulario de estados observado en la operación.
var DefaultStatuses = []string{
	string(entity.StatusRecibido),
	"En revisión",
	"Reparado",
	"Entregado",
	"Rechazado",
}

// Vocabulary lista ordenada de estados sugeridos.
type Vocabulary struct {
	labels []string
	index  map[string]string // clave plegada -> etiqueta canónica
}

// NewVocabulary construye el vocabulario. Si labels está vacío usa DefaultStatuses.
// "Recibido" siempre queda incluido por ser el estado inicial.
func NewVocabulary(labels []string) *Vocabulary {
	if len(labels) == 0 {
		labels = DefaultStatuses
	}
	v := &Vocabulary{index: make(map[string]string, len(labels)+1)}
	v.add(string(entity.StatusRecibido))
	for _, l := range labels {
		v.add(l)
	}
	return v
}

func (v *Vocabulary) add(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	key := foldKey(label)
	if _, dup := v.index[key]; dup {
		return
	}
	v.index[key] = label
	v.labels = append(v.labels, label)
}

// Labels devuelve una copia de las etiquetas en orden.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// Match busca s en el vocabulario ignorando mayúsculas, tildes y espacios extremos.
func (v *Vocabulary) Match(s string) (string, bool) {
	label, ok := v.index[foldKey(s)]
	return label, ok
}

// IsSuggested indica si s corresponde a un estado del vocabulario.
func (v *Vocabulary) IsSuggested(s string) bool {
	_, ok := v.Match(s)
	return ok
}

// foldKey "En Revisión " -> "en revision".
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		plain = strings.TrimSpace(s)
	}
	return cases.Fold().String(plain)
}
