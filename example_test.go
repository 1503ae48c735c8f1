package quire_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/adapters/memory"
)

// Example_basic saves a notebook to a directory and loads it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "quire-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	backend := fs.NewBackend(fs.Config{Root: tmpDir})

	nb := quire.New(backend)
	nb.Add(quire.NewNote("groceries", "milk, eggs", quire.Important, quire.WithID("1")))
	nb.Add(quire.NewNote("ideas", "write more go", quire.Normal, quire.WithID("2")))
	if err := nb.Save(ctx); err != nil {
		log.Fatal(err)
	}

	reloaded := quire.New(backend)
	if _, err := reloaded.Load(ctx); err != nil {
		log.Fatal(err)
	}
	for _, n := range reloaded.Notes() {
		fmt.Printf("%s %s (%s)\n", n.ID, n.Title, n.Importance)
	}
	// Output:
	// 1 groceries (important)
	// 2 ideas (normal)
}

// ExampleNotebook_Marshal shows that default fields are omitted.
func ExampleNotebook_Marshal() {
	nb := quire.New(memory.New())
	nb.Add(quire.NewNote("test", "data", quire.Normal, quire.WithID("22"), quire.WithColor(quire.Black)))

	data, err := nb.Marshal()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// [
	//   {
	//     "color": "000000",
	//     "content": "data",
	//     "id": "22",
	//     "title": "test"
	//   }
	// ]
}

// ExampleDecodeColor shows the lenient color codec.
func ExampleDecodeColor() {
	c, _ := quire.DecodeColor("#00ff7f")
	fmt.Println(quire.EncodeColor(c))

	c, err := quire.DecodeColor("not a color")
	fmt.Println(quire.EncodeColor(c), err != nil)
	// Output:
	// 00FF7F
	// 000000 true
}
