package services

import "testing"

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect rune
	}{
		{"commas win", "MODELLO,ORE,PESO", ','},
		{"semicolons win", "MODELLO;ORE;PESO", ';'},
		{"mixed, more semicolons", "MODELLO;ORE,X;PESO", ';'},
		{"no delimiter defaults to comma", "MODELLO", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectDelimiter(tt.header); got != tt.expect {
				t.Errorf("detectDelimiter(%q) = %q, want %q", tt.header, got, tt.expect)
			}
		})
	}
}

func TestSplitFields_QuotedDelimiters(t *testing.T) {
	got := splitFields(`SOLARFLEX,"1.234,56",  "note, with comma"  ,plain`, ',')
	want := []string{"SOLARFLEX", "1.234,56", "note, with comma", "plain"}
	if len(got) != len(want) {
		t.Fatalf("splitFields returned %d fields, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Modello", "MODELLO"},
		{"spaces to underscore", "Ore Installazione 1PA", "ORE_INSTALLAZIONE_1PA"},
		{"periods and parens removed", "Peso (kg) tot.", "PESO_KG_TOT"},
		{"bom stripped", "\uFEFFMODELLO", "MODELLO"},
		{"whitespace run collapsed", "ORE   INSTALLAZIONE", "ORE_INSTALLAZIONE"},
		{"symbols dropped", "COSTO €/KM", "COSTO_KM"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumericCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "1234", 1234},
		{"anglo decimal", "1234.56", 1234.56},
		{"anglo grouped", "1,234.56", 1234.56},
		{"european decimal", "1234,56", 1234.56},
		{"european grouped", "1.234,56", 1234.56},
		{"euro symbol", "€ 480", 480},
		{"percent sign", "5%", 5},
		{"kg suffix", "800 kg", 800},
		{"embedded spaces", "1 234,5", 1234.5},
		{"empty cell", "", 0},
		{"non numeric", "n/d", 0},
		{"negative", "-12,5", -12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumericCell(tt.input); got != tt.want {
				t.Errorf("ParseNumericCell(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseConfigTable(t *testing.T) {
	raw := "MODELLO,ORE INSTALLAZIONE 1PA,ORE INSTALLAZIONE 1PA PF,PESO 1PA (KG)\n" +
		"SOLARFLEX,2,\"0,5\",210\n" +
		",9,9,9\n" +
		"SOLARFLEX URANO TWIN,\"2,5\",1,260\n"

	table := ParseConfigTable(raw, 0)

	if table.Len() != 2 {
		t.Fatalf("table.Len() = %d, want 2 (empty-key row skipped)", table.Len())
	}

	row, ok := table.Row("SOLARFLEX")
	if !ok {
		t.Fatal("row SOLARFLEX not found")
	}
	if row["ORE_INSTALLAZIONE_1PA"] != 2 {
		t.Errorf("ORE_INSTALLAZIONE_1PA = %v, want 2", row["ORE_INSTALLAZIONE_1PA"])
	}
	if row["ORE_INSTALLAZIONE_1PA_PF"] != 0.5 {
		t.Errorf("ORE_INSTALLAZIONE_1PA_PF = %v, want 0.5", row["ORE_INSTALLAZIONE_1PA_PF"])
	}
	if row["PESO_1PA_KG"] != 210 {
		t.Errorf("PESO_1PA_KG = %v, want 210", row["PESO_1PA_KG"])
	}

	if keys := table.Keys(); keys[0] != "SOLARFLEX" || keys[1] != "SOLARFLEX URANO TWIN" {
		t.Errorf("keys not in sheet order: %v", keys)
	}
}

func TestParseConfigTable_TooFewLines(t *testing.T) {
	for _, raw := range []string{"", "MODELLO,ORE", "\n\n  \n"} {
		table := ParseConfigTable(raw, 0)
		if table.Len() != 0 {
			t.Errorf("ParseConfigTable(%q).Len() = %d, want empty table", raw, table.Len())
		}
	}
}

func TestParseLogisticsTable(t *testing.T) {
	raw := "PROVINCIA;CAMION GRU;BILICO\n" +
		"VR;480;900\n" +
		"mi;\"520,50\";950\n" +
		"TOTALE;999;999\n" +
		"XYZ;1;2\n"

	table := ParseLogisticsTable(raw)

	if table.Len() != 2 {
		t.Fatalf("table.Len() = %d, want 2 (non two-letter rows rejected)", table.Len())
	}

	tariffs, ok := table.Region("vr")
	if !ok {
		t.Fatal("region VR not found (lookup must be case-insensitive)")
	}
	if tariffs["CAMION_GRU"] != 480 {
		t.Errorf("CAMION_GRU = %v, want 480", tariffs["CAMION_GRU"])
	}

	mi, ok := table.Region("MI")
	if !ok {
		t.Fatal("region MI not found (codes uppercased at parse)")
	}
	if mi["CAMION_GRU"] != 520.50 {
		t.Errorf("MI CAMION_GRU = %v, want 520.50", mi["CAMION_GRU"])
	}
}

func TestParseLogisticsTable_ProvinceColumnNotFirst(t *testing.T) {
	raw := "ZONA,SIGLA,CAMION GRU\n" +
		"Nord,VR,480\n"

	table := ParseLogisticsTable(raw)
	if _, ok := table.Region("VR"); !ok {
		t.Fatal("region VR not found: SIGLA column should be detected as key")
	}
}
