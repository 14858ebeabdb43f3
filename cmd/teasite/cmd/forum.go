package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tealinux/teasite/internal/api"
	"github.com/tealinux/teasite/internal/render"
	"github.com/tealinux/teasite/pkg/models"
)

var (
	forumFormat   string
	forumCategory string
	forumReplyTo  string
	forumTitle    string
	forumTags     []string
)

var forumCmd = &cobra.Command{
	Use:   "forum",
	Short: "Browse and post to the community forum",
	Long: `Browse and post to the community forum.

Reading is anonymous; posting and liking require 'teasite login'.

Examples:
  teasite forum categories
  teasite forum topics --category <category-id>
  teasite forum topic <topic-id>
  teasite forum new --category <category-id> --title "Wi-Fi drops" "After resume the..."
  teasite forum post <topic-id> "Same here on PLASMA"
  teasite forum like <post-id>
  teasite forum search wifi`,
}

var forumCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List forum categories",
	Args:  cobra.NoArgs,
	RunE: forumRead(func(ctx context.Context, c *api.Client, args []string) (any, error) {
		return c.Categories(ctx)
	}, printCategories),
}

var forumTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics",
	Args:  cobra.NoArgs,
	RunE: forumRead(func(ctx context.Context, c *api.Client, args []string) (any, error) {
		return c.Topics(ctx, forumCategory)
	}, printTopics),
}

var forumTopicCmd = &cobra.Command{
	Use:   "topic [id]",
	Short: "Show a topic with its posts",
	Args:  cobra.ExactArgs(1),
	RunE: forumRead(func(ctx context.Context, c *api.Client, args []string) (any, error) {
		return c.Topic(ctx, args[0])
	}, printTopic),
}

var forumSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search forum topics",
	Args:  cobra.ExactArgs(1),
	RunE: forumRead(func(ctx context.Context, c *api.Client, args []string) (any, error) {
		return c.SearchTopics(ctx, args[0])
	}, printTopics),
}

var forumNewCmd = &cobra.Command{
	Use:   "new [content]",
	Short: "Open a topic",
	Args:  cobra.ExactArgs(1),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		created, err := c.CreateTopic(ctx, models.NewTopic{
			Title:      forumTitle,
			CategoryID: forumCategory,
			Content:    args[0],
			Tags:       forumTags,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created topic %s (%s)", created.Topic.ID, created.Topic.Slug), nil
	}),
}

var forumPostCmd = &cobra.Command{
	Use:   "post [topic-id] [content]",
	Short: "Reply to a topic",
	Args:  cobra.ExactArgs(2),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		post, err := c.CreatePost(ctx, args[0], args[1], forumReplyTo)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created post %s", post.ID), nil
	}),
}

var forumLikeCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		return c.LikePost(ctx, args[0])
	}),
}

var forumUnlikeCmd = &cobra.Command{
	Use:   "unlike [post-id]",
	Short: "Withdraw a like",
	Args:  cobra.ExactArgs(1),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		return c.UnlikePost(ctx, args[0])
	}),
}

var forumRenameCmd = &cobra.Command{
	Use:   "rename [topic-id] [title]",
	Short: "Rename a topic you own",
	Args:  cobra.ExactArgs(2),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		topic, err := c.UpdateTopic(ctx, args[0], args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Renamed topic to %q", topic.Title), nil
	}),
}

var forumEditCmd = &cobra.Command{
	Use:   "edit [post-id] [content]",
	Short: "Edit a post you wrote",
	Args:  cobra.ExactArgs(2),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		post, err := c.UpdatePost(ctx, args[0], args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated post %s", post.ID), nil
	}),
}

var forumDeleteTopicCmd = &cobra.Command{
	Use:   "delete-topic [topic-id]",
	Short: "Delete a topic you own",
	Args:  cobra.ExactArgs(1),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		return c.DeleteTopic(ctx, args[0])
	}),
}

var forumDeletePostCmd = &cobra.Command{
	Use:   "delete-post [post-id]",
	Short: "Delete a post you wrote",
	Args:  cobra.ExactArgs(1),
	RunE: forumWrite(func(ctx context.Context, c *api.Client, args []string) (string, error) {
		return c.DeletePost(ctx, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(forumCmd)
	forumCmd.AddCommand(
		forumCategoriesCmd, forumTopicsCmd, forumTopicCmd, forumSearchCmd,
		forumNewCmd, forumPostCmd, forumLikeCmd, forumUnlikeCmd,
		forumRenameCmd, forumEditCmd, forumDeleteTopicCmd, forumDeletePostCmd,
	)

	forumCmd.PersistentFlags().StringVar(&forumFormat, "format", "text", "Output format: text or json")
	forumTopicsCmd.Flags().StringVar(&forumCategory, "category", "", "Only topics of this category ID")
	forumNewCmd.Flags().StringVar(&forumCategory, "category", "", "Category ID (required)")
	forumNewCmd.Flags().StringVar(&forumTitle, "title", "", "Topic title (required)")
	forumNewCmd.Flags().StringSliceVar(&forumTags, "tag", nil, "Tag the topic (repeatable)")
	forumNewCmd.MarkFlagRequired("category")
	forumNewCmd.MarkFlagRequired("title")
	forumPostCmd.Flags().StringVar(&forumReplyTo, "reply-to", "", "Post ID being replied to")
}

type readFunc func(ctx context.Context, c *api.Client, args []string) (any, error)

// forumRead runs an anonymous-capable request, using the session when there
// is one, and prints the result as text or JSON.
func forumRead(fetch readFunc, print func(io.Writer, any)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		client, manager, err := newBackend(ctx, GetConfig())
		if err != nil {
			return err
		}

		v, err := fetch(ctx, manager.Client(client), args)
		if err != nil {
			return err
		}

		if forumFormat == "json" {
			output, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		}
		print(cmd.OutOrStdout(), v)
		return nil
	}
}

type writeFunc func(ctx context.Context, c *api.Client, args []string) (string, error)

// forumWrite runs a request that requires login and prints its message.
func forumWrite(do writeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		client, err := authedClient(ctx, GetConfig())
		if err != nil {
			return err
		}

		msg, err := do(ctx, client, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
}

func printCategories(w io.Writer, v any) {
	for _, c := range v.([]models.Category) {
		fmt.Fprintf(w, "%s  %-24s %s\n", c.ID, c.Name, c.Description)
	}
}

func printTopics(w io.Writer, v any) {
	topics := v.([]models.Topic)
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics found.")
		return
	}
	for _, t := range topics {
		flags := ""
		if t.IsPinned {
			flags += "[pinned] "
		}
		if t.IsLocked {
			flags += "[locked] "
		}
		fmt.Fprintf(w, "%s  %s%s (by %s, %d views)\n", t.ID, flags, t.Title, t.User.Name, t.Views)
	}
}

func printTopic(w io.Writer, v any) {
	t := v.(models.Topic)
	fmt.Fprintf(w, "%s\n%s\n", t.Title, strings.Repeat("─", len([]rune(t.Title))))
	fmt.Fprintf(w, "in %s, by %s, %s\n\n", t.Category.Name, t.User.Name, t.CreatedAt.Format("2006-01-02 15:04"))

	for _, p := range t.Posts {
		fmt.Fprintf(w, "── %s  %s  (%d likes)\n", p.User.Name, p.CreatedAt.Format("2006-01-02 15:04"), len(p.Likes))
		body, err := render.Terminal(p.Content, render.DefaultWidth)
		if err != nil {
			body = p.Content + "\n"
		}
		fmt.Fprint(w, body)
		fmt.Fprintf(w, "   id: %s\n\n", p.ID)
	}
}
