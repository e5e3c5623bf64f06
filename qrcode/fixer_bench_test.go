package qrcode

import (
	"testing"

	"github.com/ericlevine/qrfix"
)

func BenchmarkFix(b *testing.B) {
	corpus := blackboxCorpus(b)
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sym := corpus[i%len(corpus)]
				fixer := NewFixer(&qrfix.FixOptions{Parallel: parallel, Interleave: sym.layout})
				if _, err := fixer.Fix(sym.matrix); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFixAmbiguousFormat(b *testing.B) {
	corpus := blackboxCorpus(b)
	m := corpus[0].matrix.Clone()
	eraseFormat(m, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewFixer(nil).Fix(m); err != nil {
			b.Fatal(err)
		}
	}
}
