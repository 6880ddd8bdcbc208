package main

import (
	"github.com/sergev/pixy/adapter"
	_ "github.com/sergev/pixy/lego"
	_ "github.com/sergev/pixy/pixy2"
)

func main() {
	adapter.Execute()
}
