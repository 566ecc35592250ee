package main

import "food-dataset-backend/cmd"

func main() {
	cmd.Run()
}
