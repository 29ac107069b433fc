package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhollis/burrow/pkg/client"
	"github.com/mhollis/burrow/pkg/errors"
	"github.com/mhollis/burrow/pkg/gopher"
)

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	var (
		noCache  bool
		typeChar string
	)

	cmd := &cobra.Command{
		Use:   "get [URL]",
		Short: "Retrieve a Gopher resource and print it",
		Long: `Retrieve a Gopher resource and print it.

Directory listings are rendered with their item types and target
locators; text files are printed as-is; binary content is written raw
to stdout. Without a URL argument the configured default server is
retrieved.

Responses are cached locally for faster subsequent runs; use --no-cache
to force a fresh fetch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, cfg, err := c.newClient(noCache)
			if err != nil {
				return err
			}

			raw := cfg.Gopher.DefaultServer
			if len(args) > 0 {
				raw = args[0]
			}
			return c.runGet(cmd, cl, raw, typeChar, cfg.Gopher.UseSSL)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().StringVarP(&typeChar, "type", "t", "", "override the item type character (e.g. 0, 1, 9)")

	return cmd
}

// runGet retrieves the locator and prints the result.
func (c *CLI) runGet(cmd *cobra.Command, cl *client.Client, raw, typeChar string, useSSL bool) error {
	log := loggerFromContext(cmd.Context())

	u, err := gopher.Parse(raw)
	if err != nil {
		return err
	}
	if useSSL {
		u.Secure = true
	}
	if typeChar != "" {
		if len(typeChar) != 1 {
			return errors.New(errors.ErrCodeInvalidURL, "item type must be a single character: %q", typeChar)
		}
		u.ItemType = gopher.TypeFromChar(typeChar[0])
	}

	log.Debug("Retrieving", "url", u.String())
	resp, err := cl.RetrieveURL(cmd.Context(), u)
	if err != nil {
		return err
	}

	switch resp.Kind {
	case client.KindDirectory:
		fmt.Println(StyleTitle.Render(resp.URL.String()))
		printMenu(resp.Items, resp.URL.Secure)
		printStats(len(resp.Items), resp.FromCache)
	case client.KindText:
		fmt.Print(resp.Text)
	default:
		if _, err := os.Stdout.Write(resp.Data); err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
	}
	return nil
}
