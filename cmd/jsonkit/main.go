package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/yamlconv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "fmt":
		fmtCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	case "yaml":
		yamlCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsonkit CLI\n\nUsage:\n  jsonkit fmt [-offset N] [-keep-nulls] [file]\n  jsonkit check [-offset N] [file]\n  jsonkit yaml [file]\n\nNotes:\n  - Input is read from stdin when no file is given.\n  - fmt prints the canonical re-serialization of the parsed value.")
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var offset int
	var keepNulls bool
	fs.IntVar(&offset, "offset", 0, "start parsing at this byte offset")
	fs.BoolVar(&keepNulls, "keep-nulls", false, "retain explicit nulls in objects")
	_ = fs.Parse(args)

	data := readInput(fs.Arg(0))
	var opts []jsonkit.Option
	if keepNulls {
		opts = append(opts, jsonkit.KeepNulls)
	}
	v, err := jsonkit.ParseAt(data, offset, opts...)
	if err != nil {
		fail(err)
	}
	fmt.Println(v.JSON())
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var offset int
	fs.IntVar(&offset, "offset", 0, "start parsing at this byte offset")
	_ = fs.Parse(args)

	data := readInput(fs.Arg(0))
	if _, err := jsonkit.ParseAt(data, offset); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func yamlCmd(args []string) {
	fs := flag.NewFlagSet("yaml", flag.ExitOnError)
	_ = fs.Parse(args)

	data := readInput(fs.Arg(0))
	docs, err := yamlconv.DecodeAll(data)
	if err != nil {
		fail(err)
	}
	for _, v := range docs {
		fmt.Println(v.JSON())
	}
}

func readInput(path string) []byte {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail(err)
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail(err)
	}
	return data
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "jsonkit:", err)
	os.Exit(1)
}
