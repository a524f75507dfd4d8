package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/msbuild-skills/msbuild-expert/engine/webhook"
	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

const defaultAskURL = "http://localhost:3000/api/copilot"

// AskCmd returns a development command that posts a signed chat payload to a
// running gateway and prints the system prompt it injected.
func AskCmd() *cobra.Command {
	var (
		url     string
		msg     string
		secret  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Send a message to a running gateway and print the system prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("secret") {
				secret = config.FromContext(ctx).Webhook.Secret.Value()
			}
			prompt, err := askGateway(ctx, resty.New().SetTimeout(timeout), url, msg, secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", defaultAskURL, "Gateway endpoint")
	cmd.Flags().StringVarP(&msg, "message", "m", "", "User message to send")
	cmd.Flags().StringVar(&secret, "secret", "", "Webhook secret used to sign the request")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

type askMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type askPayload struct {
	Messages []askMessage `json:"messages"`
}

func askGateway(ctx context.Context, client *resty.Client, url, msg, secret string) (string, error) {
	if msg == "" {
		return "", errors.New("message is required")
	}
	body, err := json.Marshal(askPayload{Messages: []askMessage{{Role: "user", Content: msg}}})
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	req := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if secret != "" {
		req.SetHeader(webhook.HeaderSignature, webhook.Sign(secret, body))
	}
	logger.FromContext(ctx).Debug("Posting to gateway", "url", url, "signed", secret != "")
	resp, err := req.Post(url)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		reason := gjson.GetBytes(resp.Body(), "error").String()
		if reason == "" {
			reason = resp.Status()
		}
		return "", fmt.Errorf("gateway returned %d: %s", resp.StatusCode(), reason)
	}
	system := gjson.GetBytes(resp.Body(), `messages.#(role=="system").content`)
	if !system.Exists() {
		return "", errors.New("gateway response carries no system message")
	}
	return system.String(), nil
}
