package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	modresume "github.com/yungbote/careergraph-backend/internal/modules/resume"
	"github.com/yungbote/careergraph-backend/internal/modules/resume/keys"
)

type submitter interface {
	Submit(ctx context.Context, raw []byte) (modresume.SubmitOutput, error)
	Plan(raw []byte) (keys.Plan, error)
}

type options struct {
	Concurrency int
	DryRun      bool
	Out         io.Writer
}

// collectPaths returns the .json files under dir plus the explicit files,
// deduplicated and sorted.
func collectPaths(dir string, files []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if strings.TrimSpace(dir) != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
				continue
			}
			add(filepath.Join(dir, e.Name()))
		}
	}
	for _, f := range files {
		add(f)
	}
	sort.Strings(out)
	return out, nil
}

// ingest submits every file as its own submission and returns how many
// failed. One failing file never stops the others.
func ingest(ctx context.Context, resumes submitter, paths []string, opts options) int {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(opts.Out, format, args...)
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failed.Add(1)
				printf("FAIL %s: %v\n", path, err)
				return nil
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				failed.Add(1)
				printf("FAIL %s: %v\n", path, err)
				return nil
			}
			if opts.DryRun {
				plan, err := resumes.Plan(raw)
				if err != nil {
					failed.Add(1)
					printf("FAIL %s: %v\n", path, err)
					return nil
				}
				printf("[dry-run] %s email=%s education=%d experience=%d skills=%d certifications=%d\n",
					path, plan.User.Email, len(plan.Education), len(plan.Experience), len(plan.Skills), len(plan.Certifications))
				for _, w := range plan.Warnings {
					printf("  warning: %s\n", w.Error())
				}
				return nil
			}
			out, err := resumes.Submit(gctx, raw)
			if err != nil {
				failed.Add(1)
				printf("FAIL %s: %v\n", path, err)
				return nil
			}
			printf("OK   %s submission=%s skills=%d warnings=%d\n", path, out.Report.SubmissionID, out.Report.Skills, len(out.Report.Warnings))
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}
