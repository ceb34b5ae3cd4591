package main

import "reciteflow-backend/internal/cli"

func main() {
	cli.Execute()
}
