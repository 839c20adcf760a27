package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/entrada-events/checkin-api/cmd/app"
)

// @contact.name   API Support
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
