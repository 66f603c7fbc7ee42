package main

import "github.com/mikepea/yatube/cmd/yatube-server/commands"

// @title Yatube API
// @version 1.0
// @description A blogging platform: posts, groups, comments and author subscriptions.

// @contact.name Yatube Support
// @contact.url https://github.com/mikepea/yatube

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}". Browsers may send the yatube_token cookie instead.

func main() {
	commands.Execute()
}
