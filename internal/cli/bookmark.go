package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhollis/burrow/pkg/bookmarks"
	"github.com/mhollis/burrow/pkg/gopher"
)

// bookmarkCommand creates the bookmark management command.
func (c *CLI) bookmarkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage saved locators",
	}

	cmd.AddCommand(c.bookmarkAddCommand())
	cmd.AddCommand(c.bookmarkRemoveCommand())
	cmd.AddCommand(c.bookmarkListCommand())
	cmd.AddCommand(c.bookmarkSearchCommand())

	return cmd
}

// openBookmarks opens the bookmark store at the configured location.
func (c *CLI) openBookmarks() (*bookmarks.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return bookmarks.Open(cfg.BookmarksPath())
}

// bookmarkAddCommand creates the "bookmark add" subcommand.
func (c *CLI) bookmarkAddCommand() *cobra.Command {
	var (
		title string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "add URL",
		Short: "Save a locator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := gopher.Parse(args[0])
			if err != nil {
				return err
			}

			store, err := c.openBookmarks()
			if err != nil {
				return err
			}
			b, err := store.Add(u.String(), title, tags)
			if err != nil {
				return err
			}

			printSuccess("Bookmarked %s", b.URL)
			printDetail("ID: %s", b.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "display title (defaults to the URL)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag for organization (repeatable)")

	return cmd
}

// bookmarkRemoveCommand creates the "bookmark rm" subcommand.
func (c *CLI) bookmarkRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID|URL",
		Aliases: []string{"remove"},
		Short:   "Remove a saved locator",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openBookmarks()
			if err != nil {
				return err
			}

			removed, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				printWarning("No bookmark matches %q", args[0])
				return nil
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}

// bookmarkListCommand creates the "bookmark list" subcommand.
func (c *CLI) bookmarkListCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved locators",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openBookmarks()
			if err != nil {
				return err
			}

			var list []bookmarks.Bookmark
			if tag != "" {
				list = store.ByTag(tag)
			} else {
				list = store.All()
			}
			printBookmarks(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only list bookmarks with this tag")

	return cmd
}

// bookmarkSearchCommand creates the "bookmark search" subcommand.
func (c *CLI) bookmarkSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search saved locators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openBookmarks()
			if err != nil {
				return err
			}
			printBookmarks(store.Search(args[0]))
			return nil
		},
	}
}

// printBookmarks renders a bookmark listing.
func printBookmarks(list []bookmarks.Bookmark) {
	if len(list) == 0 {
		printInfo("No bookmarks")
		return
	}
	for _, b := range list {
		line := "  " + StyleTitle.Render(b.Title) + " " + StyleLink.Render(b.URL)
		if len(b.Tags) > 0 {
			line += " " + StyleDim.Render("["+strings.Join(b.Tags, ", ")+"]")
		}
		fmt.Println(line)
		printDetail("ID: %s  visits: %d", b.ID, b.Visits)
	}
}
