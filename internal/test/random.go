package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns an alphanumeric string of length within [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	rngMu.Lock()
	defer rngMu.Unlock()

	n := minLen + rng.Intn(maxLen-minLen+1)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphanumeric[rng.Intn(len(alphanumeric))]
	}
	return string(buf)
}

// RandomEmail returns a lower-case address unique enough for one test run.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 12)) + "@stockease.test"
}
