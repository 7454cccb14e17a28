package httpapi

import (
	"log"
	"net/http"
)

func StartServer(addr string, handler http.Handler) {
	log.Printf("Coffee Shop Manager starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
