package main

import "github.com/RK-HR-org/rsq/internal/cli"

func main() {
	cli.Execute()
}
