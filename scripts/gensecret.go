package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// Generates a random SESSION_SECRET for signing form tokens and enquiry
// link tokens. Run once per environment and put the output in .env.
func main() {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("SESSION_SECRET=%s\n", hex.EncodeToString(b))
}
