package rules_test

import (
	"fmt"

	"github.com/qawafi/arud/internal/prosody/rules"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

func ExampleRule_Apply() {
	reg, _ := tafila.NewRegistry(tafila.Definitions())
	mafailun, _ := reg.Get("مفاعيلن")

	qabd := rules.Qabd.Apply(mafailun)
	fmt.Println(qabd.Name(), qabd.Pattern())

	// kaff does not touch a foot without a seventh still letter
	same := rules.Kaff.Apply(qabd)
	fmt.Println(same.Name(), same.Pattern())
	// Output:
	// مفاعلن //o//o
	// مفاعلن //o//o
}
