package flowbuf_test

import (
	"fmt"

	"github.com/flowbuf/flowbuf"
)

func ExampleStream() {
	s := flowbuf.New()

	go func() {
		s.WriteString("hello, ")
		s.WriteString("world")
		s.End()
	}()

	content, _ := flowbuf.Collect(s)
	fmt.Println(string(content))
	// Output: hello, world
}

func ExampleStream_Pipe() {
	src := flowbuf.NewText("piped content")
	dst := flowbuf.New()
	src.Pipe(dst)

	content, _ := flowbuf.Collect(dst)
	fmt.Println(string(content))
	// Output: piped content
}

func ExampleStream_WriteEncoded() {
	s := flowbuf.New()
	s.WriteEncoded("aGVsbG8=", flowbuf.Base64)
	s.End()

	content, _ := flowbuf.Collect(s)
	fmt.Println(string(content))
	// Output: hello
}
