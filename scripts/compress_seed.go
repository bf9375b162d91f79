//go:build ignore

package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
)

// compressSeed gzips a seed document so it can be uploaded under
// SEED_S3_PREFIX and read back by the S3 loader.
//
// Usage: go run scripts/compress_seed.go [data/seed.json]
func main() {
	src := "data/seed.json"
	if len(os.Args) > 1 {
		src = os.Args[1]
	}
	dst := src + ".gz"

	in, err := os.Open(src)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", dst, err)
	}
	defer out.Close()

	gzipWriter := gzip.NewWriter(out)
	n, err := io.Copy(gzipWriter, in)
	if err != nil {
		log.Fatalf("Failed to compress %s: %v", src, err)
	}
	if err := gzipWriter.Close(); err != nil {
		log.Fatalf("Failed to finish %s: %v", dst, err)
	}

	fmt.Printf("Compressed %s (%d bytes) to %s\n", src, n, dst)
}
