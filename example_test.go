package ringcode_test

import (
	"context"
	"fmt"

	"github.com/yyyoichi/ringcode"
)

func Example_ringcode() {
	// Frame the text at ecc level 1 (16 redundancy bytes)
	bits, err := ringcode.Encode("Test-Ring", ringcode.Level1)
	if err != nil {
		fmt.Printf("Error encoding: %v\n", err)
		return
	}

	// Paint the bits as concentric annular sectors
	img := ringcode.Render(bits, 1024, ringcode.StyleByID("classic"))

	// Recover the text from the rendered capture
	text, err := ringcode.Decode(context.Background(), img, nil)
	if err != nil {
		fmt.Printf("Error decoding: %v\n", err)
		return
	}
	fmt.Println(text)

	// Output:
	// Test-Ring
}
