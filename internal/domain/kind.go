// Trial-kind resolution.
//
// Trial-type rows carry free-form, human-administered names ("Tutela",
// "Pagos por Consignación", "EJECUTIVO", ...). Comparing those strings at
// every rule site invites accent and casing bugs, so the name is resolved
// once, at the registry boundary, into a closed TrialKind variant. Everything
// downstream switches on the variant.
package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TrialKind is the closed set of trial-type families the business rules
// distinguish. Names outside the set resolve to KindOther.
type TrialKind int

const (
	KindOther TrialKind = iota
	KindTutela
	KindIncidenteDesacato
	KindOrdinario
	KindEjecutivo
	KindHabeasCorpus
	KindPagoPorConsignacion
)

// String returns the canonical label for the kind.
func (k TrialKind) String() string {
	switch k {
	case KindTutela:
		return "Tutela"
	case KindIncidenteDesacato:
		return "Incidente de desacato"
	case KindOrdinario:
		return "Ordinario"
	case KindEjecutivo:
		return "Ejecutivo"
	case KindHabeasCorpus:
		return "Habeas corpus"
	case KindPagoPorConsignacion:
		return "Pagos por consignación"
	}
	return "Other"
}

// RequiresCategory reports whether trials of this kind must carry a category.
// Pago por consignación is the single kind that must not have one.
func (k TrialKind) RequiresCategory() bool { return k != KindPagoPorConsignacion }

// SharesActionCatalog reports whether the two kinds draw from the same
// description-action vocabulary: Ordinario↔Ejecutivo and
// Tutela↔Incidente de desacato are interchangeable families.
func (k TrialKind) SharesActionCatalog(o TrialKind) bool {
	if k == o {
		return true
	}
	switch {
	case k == KindOrdinario && o == KindEjecutivo,
		k == KindEjecutivo && o == KindOrdinario,
		k == KindTutela && o == KindIncidenteDesacato,
		k == KindIncidenteDesacato && o == KindTutela:
		return true
	}
	return false
}

// foldTransformer strips combining marks after NFD decomposition, so
// "consignación" and "consignacion" fold to the same bytes.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldName lower-cases s, trims surrounding whitespace, and removes
// diacritics. It is the single normalization applied before any trial-type
// name comparison.
func FoldName(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ParseTrialKind resolves a stored trial-type name to its TrialKind.
// Matching is case- and accent-insensitive; both singular and plural
// spellings of pago por consignación are accepted.
func ParseTrialKind(name string) TrialKind {
	switch FoldName(name) {
	case "tutela":
		return KindTutela
	case "incidente de desacato":
		return KindIncidenteDesacato
	case "ordinario":
		return KindOrdinario
	case "ejecutivo":
		return KindEjecutivo
	case "habeas corpus":
		return KindHabeasCorpus
	case "pago por consignacion", "pagos por consignacion":
		return KindPagoPorConsignacion
	}
	return KindOther
}
