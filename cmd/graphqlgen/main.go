package main

import "github.com/hanpama/graphqlgen/internal/cli"

func main() {
	cli.Execute()
}
