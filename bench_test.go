package boxcar

import (
	"testing"
)

func BenchmarkGet(b *testing.B) {
	for _, tc := range allContainers(0) {
		b.Run(tc.name, func(b *testing.B) {
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					tc.c.Get()
				}
			})
		})
		if tc.cleanup != nil {
			tc.cleanup()
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	for _, tc := range allContainers(0) {
		b.Run(tc.name, func(b *testing.B) {
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					tc.c.Update(func(v *int) { *v++ })
				}
			})
		})
		if tc.cleanup != nil {
			tc.cleanup()
		}
	}
}

func BenchmarkReadHeavy(b *testing.B) {
	for _, tc := range allContainers(0) {
		b.Run(tc.name, func(b *testing.B) {
			b.RunParallel(func(pb *testing.PB) {
				var n int
				for pb.Next() {
					n++
					if n%16 == 0 {
						tc.c.Update(func(v *int) { *v++ })
						continue
					}
					tc.c.Get()
				}
			})
		})
		if tc.cleanup != nil {
			tc.cleanup()
		}
	}
}
