// Package main is the entry point for the docquery service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	docquery "github.com/kart-io/docquery/internal/docquery"
)

func main() {
	docquery.NewApp().Run()
}
