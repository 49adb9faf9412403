/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/samwightt/autogql/cmd"

func main() {
	cmd.Execute()
}
