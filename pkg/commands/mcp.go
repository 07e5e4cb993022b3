package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/notas/pkg/runner/mcp"
)

type mcpFlags struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func addMCP(topLevel *cobra.Command) {
	f := &mcpFlags{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets assistants list, search and change notes
and their todos through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				runner, err := f.runner(cmd, s)
				if err != nil {
					return err
				}
				return runner.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&f.transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&f.host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&f.port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&f.path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&f.tlsCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&f.tlsKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

func (f *mcpFlags) runner(cmd *cobra.Command, s *session) (*mcp.Runner, error) {
	path := strings.TrimSpace(f.path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	r := &mcp.Runner{
		Persistence:      s.Persistence,
		Name:             "notas",
		Version:          version,
		Logger:           s.Logger,
		HTTPEndpointPath: path,
		HTTPServerCert:   strings.TrimSpace(f.tlsCert),
		HTTPServerKey:    strings.TrimSpace(f.tlsKey),
	}

	switch strings.ToLower(strings.TrimSpace(f.transport)) {
	case "", string(mcp.TransportHTTP):
		host := strings.TrimSpace(f.host)
		if host == "" {
			host = "127.0.0.1"
		}
		if f.port < 0 || f.port > 65535 {
			return nil, fmt.Errorf("invalid http-port %d", f.port)
		}
		scheme := "http"
		if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
			scheme = "https"
		}

		r.Transport = mcp.TransportHTTP
		r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(f.port))
		r.OnHTTPListening = func(a net.Addr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s://%s%s\n", scheme, a.String(), path)
		}
	case string(mcp.TransportStdio):
		r.Transport = mcp.TransportStdio
	default:
		return nil, fmt.Errorf("unsupported transport %q (expected http or stdio)", f.transport)
	}
	return r, nil
}
