package domain

import "testing"

func TestParseTrialKind_CaseAndAccentInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want TrialKind
	}{
		{"Tutela", KindTutela},
		{"TUTELA", KindTutela},
		{"  tutela ", KindTutela},
		{"Incidente de desacato", KindIncidenteDesacato},
		{"INCIDENTE DE DESACATO", KindIncidenteDesacato},
		{"Ordinario", KindOrdinario},
		{"Ejecutivo", KindEjecutivo},
		{"Habeas corpus", KindHabeasCorpus},
		{"Pagos por consignación", KindPagoPorConsignacion},
		{"Pagos por consignacion", KindPagoPorConsignacion},
		{"PAGO POR CONSIGNACIÓN", KindPagoPorConsignacion},
		{"Laboral", KindOther},
		{"Divorcio", KindOther},
		{"", KindOther},
	}
	for _, c := range cases {
		if got := ParseTrialKind(c.in); got != c.want {
			t.Errorf("ParseTrialKind(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFoldName(t *testing.T) {
	if got := FoldName("  Consignación "); got != "consignacion" {
		t.Fatalf("FoldName = %q", got)
	}
	if got := FoldName("HÁBEAS"); got != "habeas" {
		t.Fatalf("FoldName = %q", got)
	}
}

func TestTrialKind_RequiresCategory(t *testing.T) {
	for _, k := range []TrialKind{KindTutela, KindIncidenteDesacato, KindOrdinario, KindEjecutivo, KindHabeasCorpus, KindOther} {
		if !k.RequiresCategory() {
			t.Errorf("%v should require a category", k)
		}
	}
	if KindPagoPorConsignacion.RequiresCategory() {
		t.Error("pago por consignación must not require a category")
	}
}

func TestTrialKind_SharesActionCatalog(t *testing.T) {
	if !KindOrdinario.SharesActionCatalog(KindEjecutivo) || !KindEjecutivo.SharesActionCatalog(KindOrdinario) {
		t.Error("Ordinario and Ejecutivo share their catalog")
	}
	if !KindTutela.SharesActionCatalog(KindIncidenteDesacato) || !KindIncidenteDesacato.SharesActionCatalog(KindTutela) {
		t.Error("Tutela and Incidente de desacato share their catalog")
	}
	if KindTutela.SharesActionCatalog(KindEjecutivo) {
		t.Error("Tutela and Ejecutivo must not share a catalog")
	}
	if !KindOther.SharesActionCatalog(KindOther) {
		t.Error("a kind shares its own catalog")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPrimeraInstancia, StatusSegundaInstancia, StatusArchivado} {
		if !ValidStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidStatus("TERCERA_INSTANCIA") || ValidStatus("") {
		t.Error("unexpected status accepted")
	}
}
