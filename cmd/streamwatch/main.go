// Watches one event stream from the command line; useful for checking that
// streams push, heartbeat and recover as expected.
// cmd/streamwatch/main.go
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/amansgnr3001/studenthub/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var url, token string
	flag.StringVar(&url, "url", "", "stream URL, e.g. http://localhost:8080/api/v1/stream/pending")
	flag.StringVar(&token, "token", os.Getenv("STREAM_TOKEN"), "bearer token")
	flag.Parse()

	if url == "" {
		log.Fatal("-url is required")
	}

	client := services.NewStreamClient(url, token)
	client.OnUpdate(func(st services.StreamState) {
		switch {
		case st.Err != nil:
			log.Printf("live=%v error: %v", st.Live, st.Err)
		default:
			log.Printf("live=%v documents=%d", st.Live, len(st.Documents))
		}
	})

	if err := client.Start(); err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
