package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"golang.org/x/exp/slog"
)

// SecretsManagerAPI is the part of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type Handler struct {
	client SecretsManagerAPI
}

func NewHandler(awsConfig aws.Config) *Handler {
	return NewHandlerWithClient(secretsmanager.NewFromConfig(awsConfig))
}

func NewHandlerWithClient(client SecretsManagerAPI) *Handler {
	return &Handler{client: client}
}

func (s *Handler) GetValue(ctx context.Context, secretName string) (string, error) {
	slog.Info("Fetching secret", "name", secretName)

	value, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", err
	}
	if value.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretName)
	}
	return *value.SecretString, nil
}

// GetSecretValueFromEnvReference reads the secret whose name is stored in envVarName.
func (s *Handler) GetSecretValueFromEnvReference(ctx context.Context, envVarName string) (string, error) {
	envVarValue := os.Getenv(envVarName)
	if envVarValue == "" {
		return "", fmt.Errorf("%s environment variable not set", envVarName)
	}

	value, err := s.GetValue(ctx, envVarValue)
	if err != nil {
		return "", fmt.Errorf("could not get secret: %w", err)
	}

	if value == "" {
		return "", fmt.Errorf("empty value fetched from secrets manager")
	}
	return value, nil
}
