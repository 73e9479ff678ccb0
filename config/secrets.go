package config

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterStore is the subset of the SSM client used to resolve secrets.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain.
func NewParameterStore(ctx context.Context) (*ssm.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ResolveAPIKey returns the provider API key. In prod the key is read from the
// SSM parameter named by APIKeyParameter; otherwise the configured value is used.
func (p ProviderConfig) ResolveAPIKey(ctx context.Context, env string, store ParameterStore) (string, error) {
	if env != "prod" || p.APIKeyParameter == "" {
		return p.APIKey, nil
	}
	if store == nil {
		return "", fmt.Errorf("no parameter store to resolve %s", p.APIKeyParameter)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	name := p.APIKeyParameter
	decrypt := true
	result, err := store.GetParameter(ctxWithTimeout, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return *result.Parameter.Value, nil
}
