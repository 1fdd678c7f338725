// internal/adapters/out/mail/sendgrid_key_provider_sm.go
package mail

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ResolveSendGridKey returns the SendGrid API key: the env value wins, the
// Secret Manager secret is the fallback for deployments that never put
// credentials in the environment.
func ResolveSendGridKey(ctx context.Context, envValue, projectID, secretID string, sm *secretmanager.Client) (string, error) {
	if key := strings.TrimSpace(envValue); key != "" {
		return key, nil
	}

	if sm == nil {
		return "", errors.New("mail: sendgrid key not in env and secret manager client is nil")
	}
	prj := strings.TrimSpace(projectID)
	sid := strings.TrimSpace(secretID)
	if prj == "" || sid == "" {
		return "", errors.New("mail: sendgrid secret not configured")
	}

	name := "projects/" + prj + "/secrets/" + sid + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("mail: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("mail: empty secret payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
