package detector

import (
	"testing"
)

func BenchmarkDetectExact(b *testing.B) {
	d, _ := newDetector(b, DefaultOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Detect(tawilBase, 3, 0)
	}
}

func BenchmarkDetectFuzzy(b *testing.B) {
	d, _ := newDetector(b, DefaultOptions())
	pattern := tawilBase + "/"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Detect(pattern, 3, 0)
	}
}

func BenchmarkDetectParallel(b *testing.B) {
	d, _ := newDetector(b, DefaultOptions())

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			d.Detect(tawilVariant, 3, 0)
		}
	})
}
