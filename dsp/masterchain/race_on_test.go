//go:build race

package masterchain

const raceEnabled = true
