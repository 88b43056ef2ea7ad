package main

import "github.com/vietddude/payout/internal/cli"

func main() {
	cli.Execute()
}
