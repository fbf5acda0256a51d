package index

import (
	"testing"
)

func TestCatalogNames(t *testing.T) {
	expected := []string{"awei_sh", "bsi", "bui", "evi", "mndwi", "ndbi", "ndti", "ndvi", "ndvire", "ndwi", "savi"}
	names := Names()
	if len(names) != len(expected) {
		t.Fatalf("expecting %d registered indices, actual %d: %v", len(expected), len(names), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("expecting index %s at position %d, actual %s", name, i, names[i])
		}
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"ndvi", "NDVI", " Ndvi "} {
		def, err := Lookup(name)
		if err != nil {
			t.Errorf("lookup of %q failed: %v", name, err)
			continue
		}
		if def.Name != "ndvi" {
			t.Errorf("expecting ndvi definition for %q, actual %s", name, def.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("ndsi")
	if err == nil {
		t.Fatal("expecting error for unregistered index")
	}
	if _, ok := err.(*UnknownIndexError); !ok {
		t.Errorf("expecting UnknownIndexError, actual %T: %v", err, err)
	}
}

func TestCatalogBindingsCoverFormulas(t *testing.T) {
	for _, name := range Names() {
		def, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup of %s failed: %v", name, err)
		}
		if len(def.Vars()) == 0 {
			t.Errorf("%s references no band symbols", name)
		}
		for _, sym := range def.Vars() {
			ref, ok := def.Binding[sym]
			if !ok {
				t.Errorf("%s: symbol %s has no default binding", name, sym)
				continue
			}
			if len(ref.Band) == 0 {
				t.Errorf("%s: symbol %s bound to empty band name", name, sym)
			}
		}
		if def.Display.Min >= def.Display.Max {
			t.Errorf("%s: display range [%v, %v] is empty", name, def.Display.Min, def.Display.Max)
		}
		if len(def.Display.Palette) == 0 {
			t.Errorf("%s: no display palette", name)
		}
	}
}

func TestSAVIPreScale(t *testing.T) {
	def, err := Lookup("savi")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	for _, sym := range []string{"NIR", "RED"} {
		if def.Binding[sym].Scale != 0.0001 {
			t.Errorf("expecting SAVI %s pre-scale 0.0001, actual %v", sym, def.Binding[sym].Scale)
		}
	}
}
