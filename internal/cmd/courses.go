package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/michaelrosejr/pytellum/internal/dynamic"
	"github.com/michaelrosejr/pytellum/internal/logging"
)

func newCoursesCmd(cli *CLI, options *Options) *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"get-courses"},
		Short:   "List courses",
		Example: "$ intellim courses --name crew",
		Args:    NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cli, options)
			if err != nil {
				return err
			}

			logging.Debugf("call api: list courses %q", name)
			courses, err := emptyOnAPIError(s.client.ListCourses(cmd.Context(), name))
			if err != nil {
				return err
			}

			if format != "" {
				return writeStructured(cli.Stdout, courses, format)
			}

			rows := courseRows(items(courses, "courses"))
			if len(rows) == 0 {
				cli.Output("No courses found")
				return nil
			}

			printTable(rows, cli.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Only list courses matching this name")
	addFormatFlag(cmd.Flags(), &format)
	return cmd
}

type courseRow struct {
	ID          string `header:"ID"`
	Name        string `header:"NAME"`
	Description string `header:"DESCRIPTION"`
	Catalog     string `header:"CATALOG"`
	Featured    string `header:"FEATURED"`
	InviteEmail string `header:"INVITE EMAIL"`
	Letters     string `header:"LETTERS"`
}

func courseRows(courses []*dynamic.Node) []courseRow {
	rows := make([]courseRow, 0, len(courses))

	for _, course := range courses {
		catalog := "N/A"
		if course.Has("in_catalog") {
			catalog = course.Text("in_catalog")
		}

		letters := 0
		if triggers, err := course.Get("letter_triggers"); err == nil {
			letters = triggers.Len()
		}

		rows = append(rows, courseRow{
			ID:          course.Text("id"),
			Name:        course.Text("name"),
			Description: course.Text("summary"),
			Catalog:     catalog,
			Featured:    course.Text("is_featured"),
			InviteEmail: course.Text("invitation_email"),
			Letters:     strconv.Itoa(letters),
		})
	}

	return rows
}
