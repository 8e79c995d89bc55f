package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/aquarium214/monotorrent/internal/metadata"
)

func main() {
	path := flag.String("file", "", "The torrent file")
	flag.Parse()

	t, err := metadata.Parse(*path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Name:         %s\n", t.Name)
	fmt.Printf("Info hash:    %s\n", t.InfoHash)
	fmt.Printf("Size:         %d bytes\n", t.Size)
	fmt.Printf("Piece length: %d bytes\n", t.PieceLength)
	fmt.Printf("Pieces:       %d\n", t.Pieces.Count())
	fmt.Printf("Private:      %v\n", t.Private)

	if t.Comment != "" {
		fmt.Printf("Comment:      %s\n", t.Comment)
	}
	if t.CreatedBy != "" {
		fmt.Printf("Created by:   %s\n", t.CreatedBy)
	}
	if !t.CreationDate.IsZero() {
		fmt.Printf("Created at:   %s\n", t.CreationDate)
	}

	fmt.Println("\nTrackers:")
	for i, tier := range t.Tiers {
		for _, url := range tier {
			fmt.Printf("  tier %d: %s\n", i, url)
		}
	}

	fmt.Println("\nFiles:")
	for _, f := range t.Files {
		fmt.Printf("  %s (%d bytes, pieces %d-%d)\n", f.Path, f.Length, f.StartPiece, f.EndPiece)
	}
}
