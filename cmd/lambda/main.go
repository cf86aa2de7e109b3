// Command lambda serves the pokespeare API from AWS Lambda behind an API
// Gateway HTTP API.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pokespeare/internal/lambdaproxy"
	"github.com/matzehuels/pokespeare/pkg/api"
	"github.com/matzehuels/pokespeare/pkg/config"
	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokespeare/pkg/pokedex"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
	})

	cfg, err := config.Load(os.Getenv("POKESPEARE_CONFIG"))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Fatal("invalid config", "err", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	svc := pokedex.NewService(
		pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout.Duration),
		funtranslations.NewClient(cfg.FunTranslations.BaseURL, cfg.FunTranslations.Timeout.Duration),
		logger,
	)

	var invoker lambdaproxy.Invoker
	if client, err := lambdaproxy.NewInvoker(context.Background()); err != nil {
		logger.Warn("warmup self-invocation disabled", "err", err)
	} else {
		invoker = client
	}

	h := lambdaproxy.New(api.NewRouter(svc, logger), invoker, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"), logger)
	lambda.Start(h.Handle)
}
