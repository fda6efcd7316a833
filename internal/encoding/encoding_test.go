package encoding

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/secrets"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

func newTestEncoder(seed uint64) *Encoder {
	return NewEncoder(secrets.NewPasswordGenerator(utils.NewRand(seed)), "en")
}

func TestSelector_HardRuleKindsAlwaysNone(t *testing.T) {
	s, err := NewSelector(nil)
	if err != nil {
		t.Fatalf("NewSelector returned error: %v", err)
	}
	r := utils.NewRand(1)

	for _, kind := range []plan.Kind{plan.KindPDF, plan.KindJPG, plan.KindPNG, plan.KindEmail} {
		for i := 0; i < 500; i++ {
			if got := s.Select(kind, r); got != None {
				t.Fatalf("Select(%s) = %s, want none", kind, got)
			}
		}
	}
}

func TestSelector_SoftRuleKindsReachEveryMethod(t *testing.T) {
	s, err := NewSelector(nil)
	if err != nil {
		t.Fatalf("NewSelector returned error: %v", err)
	}
	r := utils.NewRand(2)

	for _, kind := range []plan.Kind{plan.KindDOCX, plan.KindTXT, plan.KindXLSX, plan.KindCSV} {
		seen := map[Method]int{}
		for i := 0; i < 5000; i++ {
			seen[s.Select(kind, r)]++
		}
		for _, m := range AllMethods() {
			if seen[m] == 0 {
				t.Errorf("Select(%s) never returned %s in 5000 trials", kind, m)
			}
		}
	}
}

func TestSelector_ZeroWeightNeverDrawn(t *testing.T) {
	table := DefaultWeights()
	table[plan.KindTXT] = []float64{0, 1, 0, 0, 0, 0, 0}
	s, err := NewSelector(table)
	if err != nil {
		t.Fatalf("NewSelector returned error: %v", err)
	}
	r := utils.NewRand(3)
	for i := 0; i < 200; i++ {
		if got := s.Select(plan.KindTXT, r); got != Base64 {
			t.Fatalf("Select(txt) = %s, want base64", got)
		}
	}
}

func TestWeightTableFromConfig(t *testing.T) {
	table, err := WeightTableFromConfig(map[string][]float64{"csv": {1, 0, 0, 0, 0, 0, 0}})
	if err != nil {
		t.Fatalf("WeightTableFromConfig returned error: %v", err)
	}
	if table[plan.KindCSV][0] != 1 {
		t.Errorf("csv row not overridden: %v", table[plan.KindCSV])
	}
	if len(table[plan.KindDOCX]) != 7 {
		t.Errorf("docx default row missing: %v", table[plan.KindDOCX])
	}

	invalid := []map[string][]float64{
		{"txt": {1, 2}},
		{"txt": {-1, 1, 1, 1, 1, 1, 1}},
		{"txt": {0, 0, 0, 0, 0, 0, 0}},
		{"exe": {1, 1, 1, 1, 1, 1, 1}},
	}
	for _, rows := range invalid {
		if _, err := WeightTableFromConfig(rows); !errors.Is(err, cerrors.ErrInvalidWeights) {
			t.Errorf("WeightTableFromConfig(%v) error = %v, want ErrInvalidWeights", rows, err)
		}
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range AllMethods() {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %s, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMethod("password_zip_multi"); err != nil || got != PasswordZipMulti {
		t.Errorf("ParseMethod with underscores = %s, %v", got, err)
	}
	if _, err := ParseMethod("rot13"); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestEncode_Base64Variants(t *testing.T) {
	raw := make([]byte, 300)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	e := newTestEncoder(4)

	for _, m := range []Method{Base64, Base64Multiline, Base64URLSafe} {
		res, err := e.Encode(raw, m, "")
		if err != nil {
			t.Fatalf("Encode(%s) returned error: %v", m, err)
		}
		if res.Password != "" || res.Salt != nil {
			t.Errorf("%s should not carry a password or salt", m)
		}
		out, err := Decode(res.Content, m, "")
		if err != nil {
			t.Fatalf("Decode(%s) returned error: %v", m, err)
		}
		if !bytes.Equal(out, raw) {
			t.Errorf("%s round trip mismatch", m)
		}
	}
}

func TestEncode_MultilineWrapsAt64(t *testing.T) {
	res, err := newTestEncoder(5).Encode(bytes.Repeat([]byte("x"), 200), Base64Multiline, "")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	lines := strings.Split(string(res.Content), "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected multiple lines, got %d", len(lines))
	}
	for _, line := range lines[:len(lines)-1] {
		if len(line) != 64 {
			t.Errorf("line length %d, want 64", len(line))
		}
	}
}

func TestEncode_SymmetricRoundTrip(t *testing.T) {
	raw := []byte("Board minutes: merger talks continue")
	res, err := newTestEncoder(6).Encode(raw, SymmetricEncrypted, "")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if res.Password == "" {
		t.Fatal("Expected a generated password")
	}
	if len(res.Salt) != secrets.SaltSize || !bytes.Equal(res.Content[:secrets.SaltSize], res.Salt) {
		t.Error("output must start with the reported salt")
	}

	out, err := Decode(res.Content, SymmetricEncrypted, res.Password)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("Expected %q, got %q", raw, out)
	}

	if _, err := Decode(res.Content, SymmetricEncrypted, ""); !errors.Is(err, cerrors.ErrPasswordRequired) {
		t.Errorf("Expected ErrPasswordRequired, got: %v", err)
	}
	if _, err := Decode(res.Content, SymmetricEncrypted, res.Password+"x"); !errors.Is(err, cerrors.ErrDecodeFailed) {
		t.Errorf("Expected ErrDecodeFailed, got: %v", err)
	}
}

func TestEncode_CallerPasswordIsKept(t *testing.T) {
	res, err := newTestEncoder(7).Encode([]byte("data"), PasswordZipSingle, "Given123!")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if res.Password != "Given123!" {
		t.Errorf("Expected caller password, got %q", res.Password)
	}
}

func TestEncode_ZipSingle(t *testing.T) {
	raw := []byte(strings.Repeat("invoice line\n", 40))
	res, err := newTestEncoder(8).Encode(raw, PasswordZipSingle, "")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	entries, err := secrets.ReadEncryptedArchive(res.Content, res.Password)
	if err != nil {
		t.Fatalf("ReadEncryptedArchive returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "data.bin" || !bytes.Equal(entries[0].Data, raw) {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestEncode_ZipMulti(t *testing.T) {
	raw := []byte(strings.Repeat("0123456789", 25))
	res, err := newTestEncoder(9).Encode(raw, PasswordZipMulti, "")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if len(res.Password) != 16 {
		t.Errorf("Expected a 16 character strong password, got %q", res.Password)
	}

	entries, err := secrets.ReadEncryptedArchive(res.Content, res.Password)
	if err != nil {
		t.Fatalf("ReadEncryptedArchive returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	joined := append(append([]byte{}, entries[0].Data...), entries[1].Data...)
	if !bytes.Equal(joined, raw) {
		t.Error("first two entries do not reconstruct the content")
	}
	if entries[2].Name != "checksum.md5" || string(entries[2].Data) != decoyChecksum {
		t.Errorf("unexpected checksum entry %s: %q", entries[2].Name, entries[2].Data)
	}

	out, err := Decode(res.Content, PasswordZipMulti, res.Password)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Error("Decode did not reconstruct the content")
	}
}

func TestEncode_ZipMultiSmallContent(t *testing.T) {
	raw := []byte("tiny")
	res, err := newTestEncoder(10).Encode(raw, PasswordZipMulti, "pw")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	entries, err := secrets.ReadEncryptedArchive(res.Content, "pw")
	if err != nil {
		t.Fatalf("ReadEncryptedArchive returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "document.dat" || !bytes.Equal(entries[0].Data, raw) {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestEncode_UnknownMethod(t *testing.T) {
	if _, err := newTestEncoder(11).Encode([]byte("x"), Method(42), ""); !errors.Is(err, cerrors.ErrUnknownMethod) {
		t.Errorf("Expected ErrUnknownMethod, got: %v", err)
	}
}

func TestDetectMethod(t *testing.T) {
	e := newTestEncoder(12)
	raw := bytes.Repeat([]byte("report body "), 30)

	multi, err := e.Encode(raw, PasswordZipMulti, "pw")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	single, err := e.Encode(raw, PasswordZipSingle, "pw")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	wrapped, err := e.Encode(raw, Base64Multiline, "")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	tests := []struct {
		name    string
		content []byte
		want    Method
	}{
		{"notes.txt.b64", []byte("aGVsbG8="), Base64},
		{"notes.txt.b64", wrapped.Content, Base64Multiline},
		{"notes.txt.b64", []byte("a-b_"), Base64URLSafe},
		{"report.docx.enc", []byte{1, 2, 3}, SymmetricEncrypted},
		{"data.csv", multi.Content, PasswordZipMulti},
		{"data.csv.zip", single.Content, PasswordZipSingle},
		{"plain.txt", []byte("hello"), None},
	}
	for _, tt := range tests {
		if got := DetectMethod(tt.name, tt.content); got != tt.want {
			t.Errorf("DetectMethod(%s) = %s, want %s", tt.name, got, tt.want)
		}
	}

	if got := OriginalName("notes.txt.b64"); got != "notes.txt" {
		t.Errorf("OriginalName = %q", got)
	}
}
