// Package main provides the pagekit CLI for inspecting and scaffolding theme blocks.
package main

func main() {
	Execute()
}
