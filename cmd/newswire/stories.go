package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"newswire/internal/catalog"
	"newswire/internal/present"
	"newswire/internal/story"
)

var flagRefresh bool

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the top stories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCatalog(cmd, func(ctx context.Context, svc *catalog.Service) error {
			res, err := svc.FetchTopStories(ctx, flagRefresh)
			if err != nil {
				return err
			}
			return writeStories(cmd.OutOrStdout(), res.Origin, res.Stories, time.Now())
		})
	},
}

var storyCmd = &cobra.Command{
	Use:   "story <id|slug>",
	Short: "Show a story and its similar stories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(ctx context.Context, svc *catalog.Service) error {
			// numeric slugs resolve as ids; other slugs have no lookup
			res, ok, err := svc.StoryBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", catalog.ErrNotFound, args[0])
			}
			return writeStoryResult(cmd.OutOrStdout(), res, time.Now())
		})
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "List recommended stories for a story id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 0 {
			return fmt.Errorf("%w: %q", catalog.ErrInvalidIdentifier, args[0])
		}
		return withCatalog(cmd, func(ctx context.Context, svc *catalog.Service) error {
			return writeStories(cmd.OutOrStdout(), catalog.OriginLive, svc.RecommendedStories(ctx, id), time.Now())
		})
	},
}

func init() {
	topCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "bypass the cache and fetch from upstream")
}

func withCatalog(cmd *cobra.Command, fn func(context.Context, *catalog.Service) error) error {
	ctx := commandContext(cmd)
	logger := log.New(cmd.ErrOrStderr(), "[newswire] ", log.LstdFlags)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := shutdownContext()
		defer cancel()
		d.close(shutdownCtx)
	}()

	return fn(ctx, d.catalog)
}

func writeStories(w io.Writer, origin catalog.Origin, stories []story.Story, now time.Time) error {
	if err := writeOrigin(w, origin); err != nil {
		return err
	}
	if len(stories) == 0 {
		_, err := fmt.Fprintln(w, "No stories found.")
		return err
	}
	for _, s := range stories {
		if err := present.WriteStoryLine(w, s, now); err != nil {
			return err
		}
	}
	return nil
}

func writeStoryResult(w io.Writer, res catalog.StoryResult, now time.Time) error {
	if err := writeOrigin(w, res.Origin); err != nil {
		return err
	}
	if err := present.WriteStoryDetail(w, res.Story, now); err != nil {
		return err
	}
	if len(res.Similar) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nSimilar stories:"); err != nil {
		return err
	}
	for _, s := range res.Similar {
		if err := present.WriteStoryLine(w, s, now); err != nil {
			return err
		}
	}
	return nil
}

func writeOrigin(w io.Writer, origin catalog.Origin) error {
	if origin != catalog.OriginFallback {
		return nil
	}
	_, err := fmt.Fprintln(w, "Showing sample data: the newswire API is unavailable.")
	return err
}
