// Package main is the entry point for the mlbsplits CLI tool, which pulls
// Statcast pitch data for MLB batters and computes situational splits.
package main

import "github.com/pable/go-mlb-splits/cmd"

func main() {
	cmd.Execute()
}
