package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bintree/pkg/config"
	"github.com/matzehuels/bintree/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	maxValues int
	timeout   time.Duration
	backend   string
}

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Endpoints:
  GET  /healthz     liveness probe
  GET  /version     build information
  POST /v1/render   render a tree from {"values": [...], "format": "text"}

Rendered artifacts are cached in memory unless --cache selects another
backend from the config file (file, redis or none).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.setDefaults(c.Config.Server)

			c.Config.Cache.Backend = opts.backend
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Config{
				Addr:      opts.addr,
				MaxValues: opts.maxValues,
				Timeout:   opts.timeout,
			}, loggerFromContext(cmd.Context()))

			printInfo("Serving the render API")
			printKeyValue("Address", opts.addr)
			printKeyValue("Cache", opts.backend)
			printKeyValue("Max values", strconv.Itoa(opts.maxValues))
			printNextStep("Try", fmt.Sprintf(`curl -d '{"values": [1, 2, 3]}' http://%s/v1/render`, localAddr(opts.addr)))

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&opts.maxValues, "max-values", 0, "largest accepted input (default from config, 4095)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default from config, 30s)")
	cmd.Flags().StringVar(&opts.backend, "cache", config.BackendMemory, "cache backend: memory, file, redis, none")

	return cmd
}

// setDefaults fills unset flags from the server section of the config.
func (o *serveOpts) setDefaults(cfg config.Server) {
	if o.addr == "" {
		o.addr = cfg.Addr
	}
	if o.maxValues == 0 {
		o.maxValues = cfg.MaxValues
	}
	if o.timeout == 0 {
		o.timeout = cfg.Timeout.Duration
	}
}

// localAddr turns a listen address such as ":8080" into one a client can
// dial.
func localAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
