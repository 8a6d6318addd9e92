package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/marsrover/api"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
	"github.com/wricardo/mcp-training/marsrover/transport/mcp"
	"github.com/wricardo/mcp-training/marsrover/transport/websocket"
)

// ngrokOptions carries the tunnel settings of the serve command
type ngrokOptions struct {
	enabled   bool
	authToken string
	domain    string
}

// newHandler mounts the REST API, the WebSocket endpoint and the MCP proxy.
// baseURL is where the MCP tools reach the REST API.
func newHandler(missionService service.MissionService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(missionService, hub)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.Handle("/mcp", server.NewStreamableHTTPServer(mcpClient.GetMCPServer()))
	return mainRouter
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	missionService, err := initializeServices(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return runHTTPServer(ctx, missionService, cmd.String("addr"), ngrokOptions{
		enabled:   cmd.Bool("ngrok"),
		authToken: cmd.String("ngrok-auth"),
		domain:    cmd.String("ngrok-domain"),
	})
}

// runHTTPServer serves until SIGINT or SIGTERM. If ngrok is enabled it also
// provisions a public tunnel onto the same handler.
func runHTTPServer(ctx context.Context, missionService service.MissionService, addr string, tunnel ngrokOptions) error {
	log.Printf("Starting %s v%s", AppName, Version)

	hub := websocket.NewHub()
	go hub.Run()

	handler := newHandler(missionService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	if tunnel.enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, tunnel)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case runErr = <-serveErr:
		log.Printf("HTTP server failed: %v", runErr)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts ngrokOptions) {
	if opts.authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var endpoint ngrokConfig.Tunnel
	if opts.domain != "" {
		endpoint = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.domain))
		log.Printf("Using custom ngrok domain: %s", opts.domain)
	} else {
		endpoint = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, endpoint, ngrok.WithAuthtoken(opts.authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// mcpAction runs an MCP stdio server. It reuses an API already listening on
// --addr; otherwise it starts an internal HTTP API on a random loopback port.
func mcpAction(ctx context.Context, cmd *cli.Command) error {
	baseURL := fmt.Sprintf("http://%s", cmd.String("addr"))

	if apiAvailable(baseURL) {
		log.Printf("External API server found at %s, using it for MCP", baseURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		missionService, err := initializeServices(cmd.String("config-dir"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr())

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(missionService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		log.Printf("Internal HTTP server on %s for MCP stdio", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a mission API answers on baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
