// ==============================================================================================
// FILE: object/object_benchmark_test.go
// ==============================================================================================

package object

import "testing"

func BenchmarkArrayInspect(b *testing.B) {
	arr := &Array{Elements: []Object{&Number{Value: 1}, &Number{Value: 2}, &String{Value: "x"}}}
	for n := 0; n < b.N; n++ {
		_ = arr.Inspect()
	}
}
