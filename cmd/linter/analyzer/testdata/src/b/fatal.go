package b

import (
	"log"
	"os"
)

func loadDataset(path string) {
	if path == "" {
		log.Fatal("no dataset") // want "log.Fatal should only be used in main.main function"
	}
}

func abortRun() {
	os.Exit(1) // want "os.Exit should only be used in main.main function"
}

func main() {
	log.Fatalf("not the real main: %s", "pkg b") // want "log.Fatal should only be used in main.main function"

	os.Exit(2) // want "os.Exit should only be used in main.main function"
}
