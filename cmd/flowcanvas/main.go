// Package main provides the FlowCanvas CLI application
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/flowcanvas/flowcanvas/internal/adapters/engine/ws"
	flowrepo "github.com/flowcanvas/flowcanvas/internal/adapters/repository/flow"
	"github.com/flowcanvas/flowcanvas/pkg/flowcanvas"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cmd := "demo"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("FlowCanvas %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	case "export":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: flowcanvas export <file>")
			os.Exit(2)
		}
		if err := exportDemo(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
	case "run":
		if err := runDemo(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := demo(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
			os.Exit(1)
		}
	}
}

// newRuntime builds a runtime from the environment: FLOWCANVAS_ENGINE_URL
// selects the engine endpoint, FLOWCANVAS_DATABASE_URL switches persistence
// from in-memory to Postgres.
func newRuntime(ctx context.Context) (*flowcanvas.Runtime, error) {
	opts := []flowcanvas.RuntimeOption{}

	if url := os.Getenv("FLOWCANVAS_ENGINE_URL"); url != "" {
		opts = append(opts, flowcanvas.WithEngine(ws.NewClient(url)))
	}

	if dsn := os.Getenv("FLOWCANVAS_DATABASE_URL"); dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		repo := flowrepo.NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		opts = append(opts, flowcanvas.WithStore(repo))
	}

	return flowcanvas.NewRuntime(opts...), nil
}

// buildDemoFlow assembles a minimal chat flow: input feeding an output.
func buildDemoFlow(rt *flowcanvas.Runtime) (*flowcanvas.Graph, error) {
	g := flowcanvas.NewGraph("demo-chat")
	in, err := rt.PlaceComponent(g, "chat_input")
	if err != nil {
		return nil, err
	}
	out, err := rt.PlaceComponent(g, "text_output")
	if err != nil {
		return nil, err
	}
	if _, err := g.AddEdge(flowcanvas.Proposal{
		Source: in.ID, SourcePort: "message",
		Target: out.ID, TargetPort: "value",
	}); err != nil {
		return nil, err
	}
	return g, nil
}

func demo(ctx context.Context) error {
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	g, err := buildDemoFlow(rt)
	if err != nil {
		return err
	}
	id, err := rt.SaveFlow(ctx, g)
	if err != nil {
		return err
	}
	fmt.Printf("Built and saved demo flow %s (%d nodes, %d edges)\n", id, len(g.Nodes), len(g.Edges))
	return nil
}

func exportDemo(path string) error {
	rt := flowcanvas.NewRuntime()
	g, err := buildDemoFlow(rt)
	if err != nil {
		return err
	}
	data, err := rt.Export(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported demo flow to %s (%d bytes)\n", path, len(data))
	return nil
}

func runDemo(ctx context.Context) error {
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	g, err := buildDemoFlow(rt)
	if err != nil {
		return err
	}

	run, err := rt.Start(ctx, g, &flowcanvas.RunRequest{
		Inputs: map[string]interface{}{"message": "hello"},
	})
	if err != nil {
		return err
	}
	<-run.Done()

	snap := run.Snapshot()
	fmt.Printf("Run %s finished: %s\n", snap.RunID, snap.Status)
	for nodeID, state := range snap.Nodes {
		fmt.Printf("  node %s: %s\n", nodeID, state.Status)
	}
	if snap.Error != "" {
		return fmt.Errorf("%s: %s", snap.Failure, snap.Error)
	}
	return nil
}
