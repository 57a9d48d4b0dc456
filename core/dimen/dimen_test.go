package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gptrans.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
}

func TestParseDimenFontSizeUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gptrans.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12pt")
	if err != nil {
		t.Fatalf("%s", err.Error())
	}
	if got, want := d.Points()*72.27/72, 12.0; want-got > 0.01 || got-want > 0.01 {
		t.Errorf("expected ~12pt in printer's points, got %v", got)
	}
	//
	d, _, err = ParseDimen("1em")
	if err != nil {
		t.Fatalf("%s", err.Error())
	}
	if d != EMBase {
		t.Errorf("expected 1em == EMBase (%d), got %d", EMBase, d)
	}
	//
	d, _, err = ParseDimen("1.5em")
	if err != nil {
		t.Fatalf("%s", err.Error())
	}
	if d != DU(float64(EMBase)*1.5) {
		t.Errorf("expected 1.5em == 1.5*EMBase, got %d", d)
	}
}
