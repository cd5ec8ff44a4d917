package choropleth

import "testing"

func TestSuggest(t *testing.T) {
	candidates := []string{"Czech Republic", "Czechia", "Chad", "Chile", "Cuba"}
	got := Suggest("Czech Rep.", candidates, 3)
	if len(got) != 0 {
		// "Czech Rep." vs "Czech Republic" is 5 edits.
		t.Fatalf("unexpected suggestions %+v", got)
	}
	got = Suggest("Chda", candidates, 3)
	if len(got) != 3 || got[0].Name != "Chad" || got[0].Distance != 2 {
		t.Fatalf("suggestions = %+v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Fatalf("not ordered: %+v", got)
		}
	}
	if Suggest("Chda", candidates, 0) != nil {
		t.Fatalf("distance 0 should disable suggestions")
	}
}

func TestDiagnose(t *testing.T) {
	reports := []JoinReport{
		{Field: FieldPopulation, Unmatched: []string{"Dem. Rep. Congo", "Bosnia and Herz."}, Orphans: []string{"Bosnia and Herzegovina", "DR Congo", "Dem Rep Congo"}, Unnamed: 1},
		{Field: FieldArea},
	}
	d := Diagnose(10, reports, 3)
	if d.Features != 10 || d.Unnamed != 1 || len(d.Fields) != 2 {
		t.Fatalf("diagnostics = %+v", d)
	}
	pop := d.Fields[0]
	if len(pop.Unmatched) != 2 {
		t.Fatalf("unmatched = %+v", pop.Unmatched)
	}
	if s := pop.Unmatched[0].Suggestions; len(s) != 1 || s[0].Name != "Dem Rep Congo" {
		t.Fatalf("suggestions = %+v", s)
	}
	if d.Clean() {
		t.Fatalf("expected unclean diagnostics")
	}
	if !Diagnose(1, []JoinReport{{Field: FieldArea}}, 3).Clean() {
		t.Fatalf("expected clean diagnostics")
	}
}
