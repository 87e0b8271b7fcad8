package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/beyondcareer/teammatch/internal/config"
	"github.com/beyondcareer/teammatch/pkg/utils"
)

// Client wraps the Gmail API client
type Client struct {
	service *gmail.Service
	userID  string
	sender  string

	// nextSend is the earliest time the next message may start sending
	nextSend  time.Time
	sendMutex sync.Mutex
}

// NewClient creates a new Gmail client using an existing OAuth token
// The token should already contain the gmail.send scope
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, cfg *config.Config) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		userID:  cfg.GmailUserID,
		sender:  cfg.GmailSender,
	}, nil
}
