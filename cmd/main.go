package main

import (
	"github.com/Gojer16/Book-Management-API/internal/app"
	"github.com/Gojer16/Book-Management-API/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
