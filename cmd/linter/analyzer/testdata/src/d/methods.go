package main

import "os"

type bench struct{}

func (bench) main() {
	os.Exit(3) // want "os.Exit should only be used in main.main function"
}

func main() {
	var b bench
	b.main()
	os.Exit(0)
}
