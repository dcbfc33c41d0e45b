package main

import (
	"fmt"
	"log"
	"os"

	"partnerhub/internal/packaging"
)

// Run from the site root: zips dist/ into artifacts/hostinger-site.zip.
func main() {
	root, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to resolve working directory: %v", err)
	}
	layout := packaging.DefaultLayout(root)

	log.Println("Packaging site for upload...")
	res, err := packaging.Package(layout)
	if err != nil {
		log.Fatalf("Packaging failed: %v", err)
	}

	log.Println("Build complete!")
	log.Printf("ZIP location (artifacts): %s", res.Archive)
	log.Printf("ZIP location (dist): %s", res.DistCopy)
	log.Printf("ZIP size: %s (%d entries)", megabytes(res.Size), res.Entries)
	log.Printf("Build directory: %s", layout.BuildDir)
}

func megabytes(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
