package sift_test

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/chaisql/sift"
)

func Example() {
	s, err := sift.NewSchema("points", 2,
		sift.NewNumericAttribute("x"),
		sift.NewNumericAttribute("y"),
		sift.NewNominalAttribute("class", "A", "B"),
	)
	if err != nil {
		log.Fatal(err)
	}

	ds, err := sift.ReadJSON(strings.NewReader(`
[1, 1, "A"]
[1, 1, "A"]
[2, 2, "B"]
`), s)
	if err != nil {
		log.Fatal(err)
	}

	out, err := sift.Use(sift.NewRemoveDuplicates(false, true), ds)
	if err != nil {
		log.Fatal(err)
	}

	err = sift.WriteJSON(os.Stdout, out)
	if err != nil {
		log.Fatal(err)
	}

	// Output:
	// {"x": 1, "y": 1, "class": "A"}
	// {"x": 2, "y": 2, "class": "B"}
}

func ExampleFilter() {
	s, err := sift.NewSchema("points", 1,
		sift.NewNumericAttribute("x"),
		sift.NewNominalAttribute("class", "A", "B"),
	)
	if err != nil {
		log.Fatal(err)
	}

	f, err := sift.NewROS(50, rand.New(rand.NewSource(1)))
	if err != nil {
		log.Fatal(err)
	}

	_, err = f.SetInputFormat(s)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		class := "A"
		if i == 4 {
			class = "B"
		}

		r, err := s.DecodeJSONRow([]byte(fmt.Sprintf(`[%d, %q]`, i, class)))
		if err != nil {
			log.Fatal(err)
		}

		_, err = f.Input(r)
		if err != nil {
			log.Fatal(err)
		}
	}

	hasOutput, err := f.BatchFinished()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hasOutput, f.NumPendingOutput())

	var minority int
	for {
		r, ok := f.Output()
		if !ok {
			break
		}
		if c, _ := r.ClassCode(); c == 1 {
			minority++
		}
	}
	fmt.Println(minority)

	// Output:
	// true 8
	// 4
}

func ExamplePipeline() {
	enn, err := sift.NewENN(1)
	if err != nil {
		log.Fatal(err)
	}
	ros, err := sift.NewROS(30, rand.New(rand.NewSource(42)))
	if err != nil {
		log.Fatal(err)
	}

	p := sift.NewPipeline(enn, ros, sift.NewRemoveDuplicates(false, true))
	fmt.Println(p)

	// Output:
	// enn(1) | ros(30) | dedup(unique)
}
