package main

import "article-api/cmd"

func main() {
	cmd.Execute()
}
