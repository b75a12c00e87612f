package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/opentofu/cluster-notifier/internal/config"
)

func main() {
	ctx := context.Background()

	configBuilder := config.NewBuilder(config.WithSecretsManager(), config.WithTracing())
	cfg, err := configBuilder.BuildConfig(ctx, "notify.config")
	if err != nil {
		panic(fmt.Errorf("could not build config: %w", err))
	}

	lambda.Start(HandleRequest(cfg))
}
