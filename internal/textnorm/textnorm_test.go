package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantPlain string
		wantASCII string
	}{
		{
			name:      "lowercases and collapses whitespace",
			in:        "  Restaurant\n\tDESCHIS  acum ",
			wantPlain: "restaurant deschis acum",
			wantASCII: "restaurant deschis acum",
		},
		{
			name:      "decodes entities and nbsp",
			in:        "Fish&nbsp;&amp;&nbsp;Chips",
			wantPlain: "fish & chips",
			wantASCII: "fish & chips",
		},
		{
			name:      "strips romanian diacritics in ascii shadow",
			in:        "Închis temporar în Moșilor",
			wantPlain: "închis temporar în moșilor",
			wantASCII: "inchis temporar in mosilor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, ascii := Normalize(tt.in)
			if plain != tt.wantPlain {
				t.Errorf("plain = %q, want %q", plain, tt.wantPlain)
			}
			if ascii != tt.wantASCII {
				t.Errorf("ascii = %q, want %q", ascii, tt.wantASCII)
			}
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	in := "Închis&nbsp;TEMPORAR"
	p1, a1 := Normalize(in)
	p2, a2 := Normalize(in)
	if p1 != p2 || a1 != a2 {
		t.Fatalf("Normalize not deterministic: (%q,%q) vs (%q,%q)", p1, a1, p2, a2)
	}
}

func TestFoldASCIIDropsNonASCII(t *testing.T) {
	if got := FoldASCII("café → deschis"); got != "cafe  deschis" {
		t.Errorf("FoldASCII = %q", got)
	}
}

func TestAvailabilityInfo(t *testing.T) {
	doc := `<html><body>
<div data-testid="screens.Provider.MenuHeader.availabilityInfo">
  <span>Închis</span> <b>temporar</b>
</div>
</body></html>`

	text, ok := AvailabilityInfo(doc)
	if !ok {
		t.Fatal("expected availability block to be found")
	}
	if text != "închis temporar" {
		t.Errorf("block text = %q, want %q", text, "închis temporar")
	}
}

func TestAvailabilityInfoAbsent(t *testing.T) {
	if _, ok := AvailabilityInfo(`<html><body><div>nothing here</div></body></html>`); ok {
		t.Fatal("expected no availability block")
	}
}
