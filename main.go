package main

import (
	_ "github.com/joho/godotenv/autoload"

	"hybridctl/cmd"
)

func main() {
	cmd.Execute()
}
