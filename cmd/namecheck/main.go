package main

import "github.com/vietddude/namecheck/internal/cli"

func main() {
	cli.Execute()
}
