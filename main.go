// Package main is the entry point for the shotchart CLI tool, which fetches
// NBA shot data and aggregates it into league-adjusted hexagonal charts.
package main

import "github.com/hooplab/shotchart/cmd"

func main() {
	cmd.Execute()
}
