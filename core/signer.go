package core

import (
	"context"
	"fmt"
	"strings"
)

type BearerTokenSigner struct{}

func (BearerTokenSigner) Sign(_ context.Context, req *TransportRequest, cred Credential) error {
	if req == nil {
		return fmt.Errorf("core: transport request is required")
	}
	token := strings.TrimSpace(cred.AccessToken)
	if token == "" {
		return fmt.Errorf("core: access token is required for bearer signing")
	}
	tokenType := strings.TrimSpace(cred.TokenType)
	if tokenType == "" || strings.EqualFold(tokenType, "bearer") {
		tokenType = "Bearer"
	}
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers["Authorization"] = tokenType + " " + token
	return nil
}
