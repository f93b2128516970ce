package main

import (
	"fmt"
	"os"

	"chosenoffset.com/thurs/internal/placeholders"
)

func main() {
	fmt.Println("THURS Placeholder Texture Generator")
	fmt.Println("===================================")
	fmt.Println()

	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := placeholders.GenerateAndSave(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder textures are ready to use.")
	fmt.Println("Run the game to see them in action!")
}
