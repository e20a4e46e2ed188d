package main

import (
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/PaulBabatuyi/portfolio-cms/internal/console"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage portfolio projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(a),
		newProjectsAddCmd(a),
		newProjectsEditCmd(a),
		newProjectsDeleteCmd(a),
		newProjectsPreviewCmd(a),
	)
	return cmd
}

// projectFlags binds the editor fields to flags named as Patch expects.
func projectFlags(cmd *cobra.Command, f *console.ProjectForm) {
	fs := cmd.Flags()
	fs.StringVar(&f.Title, "title", "", "project title")
	fs.StringVar(&f.Description, "description", "", "project description")
	fs.StringVar(&f.Category, "category", "", "one of: Thumbnail, Logo Design, Branding, Social Media, Packaging, UI/UX")
	fs.StringVar(&f.Position, "position", "", `focal point, e.g. "top left", "center", "bottom-right"`)
	fs.StringVar(&f.ImageFile, "image", "", "image file to upload, scaled to 1200px")
	fs.StringVar(&f.ImageURL, "image-url", "", "hosted image URL instead of an upload")
}

func newProjectsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.api.ListProjects(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			return console.PrintProjects(a.out, projects)
		},
	}
}

func newProjectsAddCmd(a *app) *cobra.Command {
	var form console.ProjectForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			in, err := form.NewProject()
			if err != nil {
				return err
			}
			p, err := a.api.SaveProject(cmd.Context(), in)
			if err != nil {
				return a.check(err)
			}
			console.Success(a.w, "Project added: %s (%s)", p.Title, p.ID)
			return nil
		},
	}
	projectFlags(cmd, &form)
	_ = cmd.MarkFlagRequired("category")
	cmd.MarkFlagsOneRequired("image", "image-url")
	cmd.MarkFlagsMutuallyExclusive("image", "image-url")
	return cmd
}

func newProjectsEditCmd(a *app) *cobra.Command {
	var form console.ProjectForm
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			patch, err := form.Patch(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return errors.NotValidf("no fields given")
			}
			p, err := a.api.UpdateProject(cmd.Context(), args[0], patch)
			if err != nil {
				return a.check(err)
			}
			console.Success(a.w, "Project updated: %s", p.Title)
			return nil
		},
	}
	projectFlags(cmd, &form)
	cmd.MarkFlagsMutuallyExclusive("image", "image-url")
	return cmd
}

func newProjectsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			_, ok, err := a.confirmDelete(cmd.Context(), console.TargetProject, args[0])
			if err != nil {
				return err
			}
			if !ok {
				console.Warning(a.w, "Cancelled")
				return nil
			}
			console.Success(a.w, "Project deleted")
			return nil
		},
	}
}

func newProjectsPreviewCmd(a *app) *cobra.Command {
	var category, position, out string
	cmd := &cobra.Command{
		Use:   "preview <id|file>",
		Short: "Write the gallery crop of a project or image file as a JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			var p data.Project
			if _, err := os.Stat(src); err != nil {
				project, err := a.api.GetProject(cmd.Context(), src)
				if err != nil {
					return a.check(err)
				}
				if !isInline(project.ImageURL) {
					return errors.NotSupportedf("preview of a hosted image")
				}
				p, src = *project, project.ImageURL
			}

			if category != "" {
				c, err := console.ParseCategory(category)
				if err != nil {
					return err
				}
				p.Category = c
			}
			if position != "" {
				pos, err := console.ParsePosition(position)
				if err != nil {
					return err
				}
				p.ObjectPosition = pos
			}
			if p.Category == "" {
				return errors.NotValidf("--category is required for a file")
			}

			img, err := console.LoadImage(src)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return errors.Trace(err)
			}
			if err := console.WritePreview(f, img, p.Category, p.ObjectPosition.OrDefault()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Trace(err)
			}
			console.Success(a.w, "Preview written to %s (%s, %s)", out, p.Category, p.ObjectPosition.OrDefault())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category whose tile ratio to use")
	cmd.Flags().StringVar(&position, "position", "", "focal point to try")
	cmd.Flags().StringVarP(&out, "out", "o", "preview.jpg", "output file")
	return cmd
}

func isInline(u string) bool {
	return strings.HasPrefix(u, "data:")
}
