package algolia

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerClient defines the interface for AWS Secrets Manager operations.
type SecretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretPath returns the Secrets Manager name holding the Algolia
// credentials of an environment.
func SecretPath(env string) string {
	return fmt.Sprintf("%s/tripsearch/algolia", env)
}

// AWSSecrets returns a FetchSecrets function that reads the secret at
// SecretPath(env). The secret holds JSON with app_id and write_api_key.
func AWSSecrets(ctx context.Context, client SecretsManagerClient, env string) FetchSecrets {
	path := SecretPath(env)
	return func() (Secrets, error) {
		return fetchSecrets(ctx, client, path, "at path "+path)
	}
}

// AWSSecretsFromARN returns a FetchSecrets function that reads the secret
// identified by secretArn.
func AWSSecretsFromARN(ctx context.Context, client SecretsManagerClient, secretArn string) FetchSecrets {
	return func() (Secrets, error) {
		return fetchSecrets(ctx, client, secretArn, "with ARN "+secretArn)
	}
}

func fetchSecrets(ctx context.Context, client SecretsManagerClient, secretID, where string) (Secrets, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return Secrets{}, fmt.Errorf("failed to get secret from AWS Secrets Manager %s: %w", where, err)
	}

	if result.SecretString == nil {
		return Secrets{}, fmt.Errorf("secret %s has no string value", where)
	}

	var secrets Secrets
	if err := json.Unmarshal([]byte(aws.ToString(result.SecretString)), &secrets); err != nil {
		return Secrets{}, fmt.Errorf("failed to unmarshal secret JSON %s: %w", where, err)
	}

	return secrets, nil
}
