// Package main brute-forces clearance keys accepted by the prison exit
// protocol. Handy for testing the exit path without knowing a key.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/wardenworks/prisonsim/internal/security"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func main() {
	var (
		count = flag.Int("n", 1, "number of keys to generate")
		seed  = flag.Int64("seed", 0, "random seed (0 uses the current time)")
	)
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	for i := 0; i < *count; i++ {
		key, ok := generate(rng, 10_000_000)
		if !ok {
			fmt.Fprintln(os.Stderr, "gave up: no valid key found")
			os.Exit(1)
		}
		fmt.Printf("%s-%s-%s-%s\n", key[0:4], key[4:8], key[8:12], key[12:16])
	}
}

// generate draws random 16-character candidates until one passes the
// checksum, up to the given attempt budget.
func generate(rng *rand.Rand, budget int) (string, bool) {
	buf := make([]byte, 16)
	for attempt := 0; attempt < budget; attempt++ {
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		key := string(buf)
		if security.ValidKey(key) {
			return key, true
		}
	}
	return "", false
}
