package main

import (
	"flag"
	"fmt"
	"os"

	"notechat/internal/extract"
)

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "course_notes", "Directory containing PDF files to convert")
	flag.Parse()

	fmt.Println("PDF to Text Converter")
	fmt.Printf("Processing directory: %s\n\n", dir)

	if _, err := os.Stat(dir); err != nil {
		fmt.Printf("Directory not found: %s\n", dir)
		fmt.Println("Please create the directory and add your PDF files.")
		os.Exit(1)
	}

	converted, failed, err := extract.ConvertAll(dir)
	if err != nil {
		fmt.Printf("Conversion failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nConverted: %d\n", converted)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Printf("Text files saved to: %s\n", dir)
}
