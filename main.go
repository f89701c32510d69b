package main

import (
	"github.com/OliveiraNt/kafkalens/cmd"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()
	cmd.Execute()
}
