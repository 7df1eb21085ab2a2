/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/quantike/gulog/cmd/gulog/cmd"
)

func main() {
	cmd.Execute()
}
