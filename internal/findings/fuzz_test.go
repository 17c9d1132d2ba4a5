package findings

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/scanbrief/api/schemas"
	"github.com/xkilldash9x/scanbrief/internal/sarif"
)

func checkInvariants(t *testing.T, r schemas.ScanResult) {
	t.Helper()
	if !r.OK() {
		if r.Total() != 0 {
			t.Fatalf("failure result carries %d findings", r.Total())
		}
		return
	}
	if r.Counts.Sum() != r.Total() {
		t.Fatalf("severity counts sum %d != total %d", r.Counts.Sum(), r.Total())
	}
	for _, f := range r.Findings {
		switch f.Severity {
		case schemas.SeverityHigh, schemas.SeverityMedium, schemas.SeverityLow, schemas.SeverityNone:
		default:
			t.Fatalf("unexpected severity %q", f.Severity)
		}
	}
}

// FuzzDecode_Raw feeds arbitrary bytes to the decoder. It must never panic and
// must always uphold the count invariant.
func FuzzDecode_Raw(f *testing.F) {
	f.Add([]byte(`{"runs":[{"results":[{"level":"error"}]}]}`))
	f.Add([]byte(`{"runs":[{"results":[{"level":7}]}]}`))
	f.Add([]byte(`null`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, data []byte) {
		checkInvariants(t, Decode(schemas.CategoryFilesystem, data))
	})
}

// FuzzDecode_Structured generates well formed SARIF logs with arbitrary optional
// fields and checks the decoder agrees with the number of generated results.
func FuzzDecode_Structured(f *testing.F) {
	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzz.NewConsumer(data)
		log := &sarif.Log{}
		if err := consumer.GenerateStruct(log); err != nil {
			return
		}

		doc, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(log)
		if err != nil {
			return
		}

		r := Decode(schemas.CategoryInfrastructure, doc)
		checkInvariants(t, r)
		if r.OK() && r.Total() != len(log.AllResults()) {
			t.Fatalf("decoded %d findings, generated %d results", r.Total(), len(log.AllResults()))
		}
	})
}
