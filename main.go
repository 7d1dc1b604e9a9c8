package main

import "github.com/Jayparmar2411/Nutrivision/cmd/nutrivision"

func main() {
	nutrivision.Execute()
}
