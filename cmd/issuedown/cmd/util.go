package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"

	"github.com/issuedown/issuedown/internal/transport"
)

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

func createGithubClient(ctx context.Context, token string) *github.Client {
	// Give oauth2 a base client that stamps our User-Agent on every request
	baseClient := &http.Client{
		Transport: transport.WithUserAgent(nil, fmt.Sprintf("issuedown/%s", version)),
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, baseClient)

	tokenSource := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(ctx, tokenSource)
	return github.NewClient(httpClient)
}
