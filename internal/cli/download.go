package cli

import (
	"path"

	"github.com/spf13/cobra"

	"github.com/mhollis/burrow/pkg/gopher"
)

// downloadCommand creates the download command.
func (c *CLI) downloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download URL [DEST]",
		Short: "Save a Gopher resource to a local file",
		Long: `Save a Gopher resource to a local file.

The destination defaults to the last path segment of the selector, with
an extension matching the item type when the selector has none.
Downloads always bypass the response cache.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, cfg, err := c.newClient(true)
			if err != nil {
				return err
			}

			u, err := gopher.Parse(args[0])
			if err != nil {
				return err
			}
			if cfg.Gopher.UseSSL {
				u.Secure = true
			}

			dest := ""
			if len(args) > 1 {
				dest = args[1]
			}
			if dest == "" {
				dest = defaultDest(u)
			}

			log := loggerFromContext(cmd.Context())
			log.Debug("Downloading", "url", u.String(), "dest", dest)

			n, err := cl.Download(cmd.Context(), u.String(), dest)
			if err != nil {
				return err
			}

			printSuccess("Downloaded %d bytes", n)
			printFile(dest)
			return nil
		},
	}

	return cmd
}

// defaultDest derives a local filename from the locator's selector. The
// host fallback always gets a type extension so a dotted hostname is not
// mistaken for a named file.
func defaultDest(u gopher.URL) string {
	name := path.Base(u.Selector)
	if name == "" || name == "." || name == "/" {
		return u.Host + u.ItemType.Extension()
	}
	if path.Ext(name) == "" {
		name += u.ItemType.Extension()
	}
	return name
}
