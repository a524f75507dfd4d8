// Package mcptools exposes the classification pipeline as MCP tools.
//
// Each tool follows the same shape: a struct holding its dependencies,
// Definition() returning the schema and Handle() serving a call.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/msbuild-skills/msbuild-expert/engine/domain"
	"github.com/msbuild-skills/msbuild-expert/engine/gateway"
	"github.com/msbuild-skills/msbuild-expert/engine/intent"
)

const argMessage = "message"

func messageArg() mcp.ToolOption {
	return mcp.WithString(argMessage,
		mcp.Required(),
		mcp.Description("The user's chat message"),
	)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// DomainCheckTool handles msbuild_domain_check.
type DomainCheckTool struct {
	gate *domain.Gate
}

func NewDomainCheckTool(gate *domain.Gate) *DomainCheckTool {
	return &DomainCheckTool{gate: gate}
}

func (t *DomainCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("msbuild_domain_check",
		mcp.WithDescription("Report whether a message is about MSBuild or .NET builds, with the signals that matched."),
		messageArg(),
	)
}

func (t *DomainCheckTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := req.GetString(argMessage, "")
	if msg == "" {
		return mcp.NewToolResultError("message is required"), nil
	}
	return jsonResult(t.gate.Explain(msg))
}

// ClassifyIntentTool handles msbuild_classify_intent.
type ClassifyIntentTool struct {
	classifier *intent.Classifier
}

func NewClassifyIntentTool(classifier *intent.Classifier) *ClassifyIntentTool {
	return &ClassifyIntentTool{classifier: classifier}
}

func (t *ClassifyIntentTool) Definition() mcp.Tool {
	return mcp.NewTool("msbuild_classify_intent",
		mcp.WithDescription("Classify an MSBuild question into a knowledge area and show per-area scores."),
		messageArg(),
	)
}

type intentResult struct {
	Intent intent.Label   `json:"intent"`
	Bundle string         `json:"bundle,omitempty"`
	Scores []intent.Score `json:"scores"`
}

func (t *ClassifyIntentTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := req.GetString(argMessage, "")
	if msg == "" {
		return mcp.NewToolResultError("message is required"), nil
	}
	label := t.classifier.Classify(msg)
	bundle, _ := t.classifier.Bundle(label)
	return jsonResult(intentResult{Intent: label, Bundle: bundle, Scores: t.classifier.Scores(msg)})
}

// BuildPromptTool handles msbuild_build_prompt.
type BuildPromptTool struct {
	pipeline *gateway.Pipeline
}

func NewBuildPromptTool(pipeline *gateway.Pipeline) *BuildPromptTool {
	return &BuildPromptTool{pipeline: pipeline}
}

func (t *BuildPromptTool) Definition() mcp.Tool {
	return mcp.NewTool("msbuild_build_prompt",
		mcp.WithDescription(
			"Return the system prompt the gateway would prepend for a message: "+
				"the knowledge-augmented MSBuild prompt, or the out-of-scope redirect.",
		),
		messageArg(),
	)
}

func (t *BuildPromptTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := req.GetString(argMessage, "")
	if msg == "" {
		return mcp.NewToolResultError("message is required"), nil
	}
	return mcp.NewToolResultText(t.pipeline.Decide(msg).Prompt), nil
}
