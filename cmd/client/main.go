package main

import (
	"flag"
	"log"
	"os"

	"movielists/internal/client"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "movielists server base URL")
	flag.Parse()

	c, err := client.New(*baseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := c.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
