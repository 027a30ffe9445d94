package uid

import (
	"errors"
	"strconv"
	"testing"

	"github.com/herlein/gocat-hops/pkg/firmware"
	"pgregory.net/rapid"
)

func TestDeriveIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		wantID string
		seed   uint32
	}{
		{"default phrase", "42,13,9,8", "00002a0d0908", 705497356},
		{"six values", "1,2,3,4,5,6", "010203040506", 50595074},
		{"leading zeros", "007,1,2,3", "000007010203", 117506567},
		{"seven values hashed", "1,2,3,4,5,6,7", "7a6dd8dc77f4", 3638327280},
		{"space hashed", "42, 13,9,8", "c712a6779df2", 2792857078},
		{"value above byte hashed", "256,1,2,3", "72912bd69e78", 735485564},
		{"three values hashed", "1,2,3", "dd2088abf1bb", 2292969919},
		{"empty token hashed", "1,2,,3", "92ec67f3dc1e", 1744034842},
		{"negative hashed", "-1,2,3,4", "50ba807b2536", 2155554098},
		{"overflowing token hashed", "99999999999999999999,1,2,3", "50012c4dbfdf", 743292891},
		{"arabic-indic digits", "٤٢,13,9,8", "00002a0d0908", 705497356},
		{"fullwidth digits", "４２,13,9,8", "00002a0d0908", 705497356},
		{"arabic-indic six values", "١,٢,٣,٤,٥,٦", "010203040506", 50595074},
		{"arabic-indic above byte hashed", "٢٥٦,1,2,3", "a35e95418763", 2504099687},
		{"superscript hashed", "²,1,2,3", "8198ec75555a", 3967112542},
		{"circled digit hashed", "①,1,2,3", "676893218fdd", 2468450265},
		{"percent verb kept literal", "100%d", "cdcb9ef3d3de", 2666779610},
		{"binding phrase", "expresslrs", "41f521e63ae2", 568736486},
		{"another binding phrase", "myphrase", "28aa40be81db", 1086226911},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := DeriveIdentifier(tt.phrase)
			if err != nil {
				t.Fatalf("DeriveIdentifier(%q) error = %v", tt.phrase, err)
			}
			if id.String() != tt.wantID {
				t.Errorf("DeriveIdentifier(%q) = %s, want %s", tt.phrase, id, tt.wantID)
			}
			if seed := DeriveSeed(id); seed != tt.seed {
				t.Errorf("DeriveSeed(%s) = %d, want %d", id, seed, tt.seed)
			}
		})
	}
}

func TestDeriveIdentifierEmptyPhrase(t *testing.T) {
	_, err := DeriveIdentifier("")
	if !errors.Is(err, ErrInvalidPhrase) {
		t.Fatalf("DeriveIdentifier(\"\") error = %v, want ErrInvalidPhrase", err)
	}
}

func TestSeedOTAVersion(t *testing.T) {
	profile := firmware.Default()
	profile.OTAVersion = 0
	d, err := NewDeriver(profile)
	if err != nil {
		t.Fatalf("NewDeriver() error = %v", err)
	}

	id := Identifier{0xAA, 0xBB, 0x12, 0x34, 0x56, 0x78}
	if got, want := d.Seed(id), uint32(0x12345678); got != want {
		t.Errorf("Seed() = 0x%08X, want 0x%08X", got, want)
	}
	if got, want := DeriveSeed(id), uint32(0x1234567C); got != want {
		t.Errorf("DeriveSeed() = 0x%08X, want 0x%08X", got, want)
	}
}

func TestCustomBindingTemplate(t *testing.T) {
	profile := firmware.Default()
	profile.BindingTemplate = "%s"
	d, err := NewDeriver(profile)
	if err != nil {
		t.Fatalf("NewDeriver() error = %v", err)
	}

	custom, _ := d.Identifier("expresslrs")
	standard, _ := DeriveIdentifier("expresslrs")
	if custom == standard {
		t.Errorf("template change did not change identifier %s", custom)
	}
}

func TestNewDeriverRejectsInvalidProfile(t *testing.T) {
	profile := firmware.Default()
	profile.NumericMaxTokens = 9
	if _, err := NewDeriver(profile); !errors.Is(err, firmware.ErrInvalidProfile) {
		t.Fatalf("NewDeriver() error = %v, want ErrInvalidProfile", err)
	}
}

func TestNewDeriverRejectsFormatTemplate(t *testing.T) {
	for _, template := range []string{"%d-%s", "100%%s"} {
		profile := firmware.Default()
		profile.BindingTemplate = template
		if _, err := NewDeriver(profile); !errors.Is(err, firmware.ErrInvalidProfile) {
			t.Errorf("NewDeriver(%q) error = %v, want ErrInvalidProfile", template, err)
		}
	}
}

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier("00002a0d0908")
	if err != nil {
		t.Fatalf("ParseIdentifier() error = %v", err)
	}
	if want := (Identifier{0, 0, 42, 13, 9, 8}); id != want {
		t.Errorf("ParseIdentifier() = %v, want %v", id, want)
	}

	for _, bad := range []string{"", "00002a0d09", "00002a0d0908ff", "zz002a0d0908"} {
		if _, err := ParseIdentifier(bad); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ParseIdentifier(%q) error = %v, want ErrInvalidIdentifier", bad, err)
		}
	}
}

func TestIdentifierDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		phrase := rapid.StringN(1, 64, -1).Draw(t, "phrase")

		a, err := DeriveIdentifier(phrase)
		if err != nil {
			t.Fatalf("DeriveIdentifier(%q) error = %v", phrase, err)
		}
		b, _ := DeriveIdentifier(phrase)
		if a != b {
			t.Fatalf("DeriveIdentifier(%q) not deterministic: %s != %s", phrase, a, b)
		}
	})
}

func TestNumericPhraseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Byte(), 4, 6).Draw(t, "values")

		phrase := ""
		for i, v := range values {
			if i > 0 {
				phrase += ","
			}
			phrase += strconv.Itoa(int(v))
		}

		id, err := DeriveIdentifier(phrase)
		if err != nil {
			t.Fatalf("DeriveIdentifier(%q) error = %v", phrase, err)
		}
		pad := len(id) - len(values)
		for i := 0; i < pad; i++ {
			if id[i] != 0 {
				t.Fatalf("DeriveIdentifier(%q) = %s, want zero padding", phrase, id)
			}
		}
		for i, v := range values {
			if id[pad+i] != v {
				t.Fatalf("DeriveIdentifier(%q) = %s, byte %d != %d", phrase, id, pad+i, v)
			}
		}
	})
}
