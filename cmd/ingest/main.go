package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yungbote/careergraph-backend/internal/app"
)

type fileList []string

func (l *fileList) String() string { return strings.Join(*l, ",") }
func (l *fileList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var files fileList
	var dir string
	var concurrency int
	var dryRun bool
	flag.Var(&files, "file", "parsed résumé JSON file (repeatable)")
	flag.StringVar(&dir, "dir", "", "directory of parsed résumé JSON files")
	flag.IntVar(&concurrency, "concurrency", 4, "files submitted in parallel")
	flag.BoolVar(&dryRun, "dry-run", false, "print resolved plans without writing the graph")
	flag.Parse()

	paths, err := collectPaths(dir, files)
	if err != nil {
		fmt.Printf("collect files: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Println("no files to ingest (use -dir or -file)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}

	failed := ingest(ctx, application.Resumes, paths, options{
		Concurrency: concurrency,
		DryRun:      dryRun,
		Out:         os.Stdout,
	})
	application.Close()

	fmt.Printf("done; files=%d failed=%d\n", len(paths), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
