// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package examples

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/adminkit/internal/command"
	"github.com/matt-FFFFFF/adminkit/internal/commandregistry"
	"github.com/matt-FFFFFF/adminkit/internal/walker"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Register adds the demo commands to r.
func Register(r commandregistry.Registry) error {
	for _, def := range []command.Definition{Walk(), Pages(), Files()} {
		if err := r.Register(def); err != nil {
			return err
		}
	}

	return nil
}

// Walk returns demo:walk, which walks a numbered list and fails every n-th item.
func Walk() command.Definition {
	return command.Definition{
		Name:  "demo:walk",
		Usage: "Walk a numbered list of items",
		Questions: []command.Question{
			{Key: "count", Prompt: "How many items?", Default: "10"},
			{Key: "fail-every", Prompt: "Fail every n-th item (0 never)?", Default: "0"},
		},
		Execute: func(ctx context.Context, run *command.Run) error {
			count, err := run.AnswerInt("count")
			if err != nil {
				return err
			}

			failEvery, err := run.AnswerInt("fail-every")
			if err != nil {
				return err
			}

			if count < 0 {
				return errors.Errorf("count must not be negative, got %d", count)
			}

			items := make([]int, count)
			for i := range items {
				items[i] = i + 1
			}

			_, err = walker.Walk(ctx, run.Walker(), walker.Slice(items), func(_ context.Context, n int) (string, error) {
				if failEvery > 0 && n%failEvery == 0 {
					return "", errors.Errorf("item %d rejected", n)
				}

				return fmt.Sprintf("item %d processed", n), nil
			})

			return err
		},
	}
}

// Pages returns demo:pages, which walks a generated list page by page.
func Pages() command.Definition {
	return command.Definition{
		Name:  "demo:pages",
		Usage: "Walk a generated list page by page",
		Questions: []command.Question{
			{Key: "total", Prompt: "How many items?", Default: "45"},
			{Key: "page-size", Prompt: "Items per page?", Default: "20"},
		},
		Execute: func(ctx context.Context, run *command.Run) error {
			total, err := run.AnswerInt("total")
			if err != nil {
				return err
			}

			size, err := run.AnswerInt("page-size")
			if err != nil {
				return err
			}

			if total < 0 {
				return errors.Errorf("total must not be negative, got %d", total)
			}

			skus := make([]string, total)
			for i := range skus {
				skus[i] = fmt.Sprintf("SKU-%05d", i+1)
			}

			sum, err := walker.Walk(ctx, run.Walker(), walker.Paged[string](NewMemoryPager(skus, size)),
				func(_ context.Context, sku string) (string, error) {
					return sku + " indexed", nil
				})
			if err != nil {
				return err
			}

			run.Output.LogInfo(fmt.Sprintf("%d items on %d pages", sum.Total, sum.Pages))

			return nil
		},
	}
}

// Files returns demo:files, which prints the size of every file matching a glob.
func Files() command.Definition {
	return command.Definition{
		Name:  "demo:files",
		Usage: "Print the size of files matching a pattern",
		Questions: []command.Question{
			{Key: "dir", Prompt: "Directory?", Default: "."},
			{Key: "pattern", Prompt: "File pattern?", Default: "*"},
			{Key: "page-size", Prompt: "Files per page?", Default: "50"},
		},
		Execute: func(ctx context.Context, run *command.Run) error {
			size, err := run.AnswerInt("page-size")
			if err != nil {
				return err
			}

			fs := FsFactory()

			matches, err := afero.Glob(fs, filepath.Join(run.Answer("dir"), run.Answer("pattern")))
			if err != nil {
				return errors.Wrap(err, "invalid pattern")
			}

			slices.Sort(matches)

			if len(matches) == 0 {
				run.Output.LogNotice("No files matched")
				return nil
			}

			_, err = walker.Walk(ctx, run.Walker(), walker.Paged[string](NewMemoryPager(matches, size)),
				func(_ context.Context, name string) (string, error) {
					info, err := fs.Stat(name)
					if err != nil {
						return "", errors.WithStack(err)
					}

					if info.IsDir() {
						return name + " (directory)", nil
					}

					return fmt.Sprintf("%s (%d bytes)", name, info.Size()), nil
				})

			return err
		},
	}
}
