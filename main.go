// Package main Quill publishing backend API
//
//	@title			Quill API
//	@version		1.0.0
//	@description	Quill is a lightweight publishing backend with article and account management
//
//	@host			localhost:3000
//	@BasePath		/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import "github.com/quillcms/quill/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
