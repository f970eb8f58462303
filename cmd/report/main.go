package main

import "ranked-report/internal/cmd"

func main() {
	cmd.Execute()
}
