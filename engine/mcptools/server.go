package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/msbuild-skills/msbuild-expert/engine/domain"
	"github.com/msbuild-skills/msbuild-expert/engine/gateway"
	"github.com/msbuild-skills/msbuild-expert/engine/intent"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/msbuild-skills/msbuild-expert/pkg/version"
)

const serverName = "msbuild-expert"

// NewServer registers every tool over the knowledge in st.
func NewServer(st *store.Store) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version.Get().Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	domainTool := NewDomainCheckTool(domain.NewMSBuild())
	s.AddTool(domainTool.Definition(), domainTool.Handle)
	intentTool := NewClassifyIntentTool(intent.NewMSBuild())
	s.AddTool(intentTool.Definition(), intentTool.Handle)
	promptTool := NewBuildPromptTool(gateway.NewMSBuildPipeline(st))
	s.AddTool(promptTool.Definition(), promptTool.Handle)
	return s
}

// ServeStdio runs s over stdin and stdout until the input closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
