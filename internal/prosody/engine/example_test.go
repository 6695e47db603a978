package engine_test

import (
	"fmt"

	"github.com/qawafi/arud/internal/prosody/engine"
)

func Example() {
	ctx := engine.Default()

	matches := ctx.Detector.Detect("/o////o/o/o/o//o//o/o/o", 2, 0)
	for _, m := range matches {
		fmt.Printf("%s %.3f %s\n", m.Name, m.Confidence, m.Quality)
	}
	fmt.Println(ctx.Detector.ValidatePattern("//o/o//o/o/o//o/o//o/o/o", 1))

	// Output:
	// الطويل 0.968 exact
	// البسيط 0.968 exact
	// true
}
