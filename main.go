package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/civicmap/civicmap-api/api/handlers"

	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("civicmap-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
