package main

import (
	"flag"
	"log"

	"word-rush/internal/words"
)

// load-words validates a word pair file and reports the pool sizes, so
// a broken corpus is caught before the server refuses to start a game.
func main() {
	filePath := flag.String("file", "public/assets/json/wordpairs.json", "path to word pair json")
	flag.Parse()

	bank, err := words.Load(*filePath)
	if err != nil {
		log.Fatalf("failed to load word pairs: %v", err)
	}

	for _, d := range words.Difficulties() {
		size := bank.PoolSize(d)
		if size == 0 {
			log.Printf("WARNING: empty pool difficulty=%s", d)
			continue
		}
		log.Printf("pool difficulty=%s words=%d points=%d", d, size, words.Points(d))
	}
}
