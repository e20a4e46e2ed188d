package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/PaulBabatuyi/portfolio-cms/internal/console"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and edit site copy",
	}

	var full, asJSON bool
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the settings merged over the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.api.GetSettings(cmd.Context())
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			return console.WriteSettingsYAML(a.out, s, full)
		},
	}
	get.Flags().BoolVar(&full, "full", false, "print inline images in full")
	get.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")

	set := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Write one field; lists and links take YAML or JSON",
		Example: `  portfolioctl settings set designerName "Ada Studio"
  portfolioctl settings set skills "Branding, Logo Design"
  portfolioctl settings set stats '[{label: Clients, value: "40+"}]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			body, err := console.SettingsField(args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := a.api.UpdateSettings(cmd.Context(), body); err != nil {
				return a.check(err)
			}
			console.Success(a.w, "Settings updated successfully! (%s)", args[0])
			return nil
		},
	}

	var remove bool
	aboutImage := &cobra.Command{
		Use:   "about-image [file]",
		Short: "Upload the about-section photo, scaled to 800px",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			uri := ""
			if !remove {
				if len(args) != 1 {
					return cmd.Usage()
				}
				var err error
				if uri, err = console.AboutImage(args[0]); err != nil {
					return err
				}
			}
			if _, err := a.api.UpdateSettings(cmd.Context(), map[string]any{"aboutImageUrl": uri}); err != nil {
				return a.check(err)
			}
			if remove {
				console.Success(a.w, "About image removed")
			} else {
				console.Success(a.w, "About image uploaded (%d KB)", len(uri)/1024)
			}
			return nil
		},
	}
	aboutImage.Flags().BoolVar(&remove, "remove", false, "clear the photo")

	cmd.AddCommand(get, set, aboutImage)
	return cmd
}
