package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelrosejr/pytellum/internal/dynamic"
	"github.com/michaelrosejr/pytellum/internal/logging"
)

func newEnrollmentsCmd(cli *CLI, options *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "enrollments COURSE_ID",
		Aliases: []string{"get-enrollments"},
		Short:   "List the enrollments of a course, grouped by session",
		Example: "$ intellim enrollments 12345",
		Args:    ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID := args[0]

			s, err := newSession(cli, options)
			if err != nil {
				return err
			}

			logging.Debugf("call api: list enrollments of course %s", courseID)
			result, err := emptyOnAPIError(s.client.ListEnrollments(cmd.Context(), courseID))
			if err != nil {
				return err
			}

			if format != "" {
				return writeStructured(cli.Stdout, result, format)
			}

			groups := groupBySession(items(result, "enrollments"))
			if len(groups) == 0 {
				cli.Output("No enrollments found for course ID %s", courseID)
				return nil
			}

			for i, group := range groups {
				if i > 0 {
					cli.Output("")
				}

				cli.Output("Enrollments for Session ID %s", group.sessionID)

				rows := enrollmentRows(group.enrollments, s.location)
				if len(rows) == 0 {
					cli.Output("No students enrolled")
					continue
				}

				printTable(rows, cli.Stdout)
			}

			return nil
		},
	}

	addFormatFlag(cmd.Flags(), &format)
	return cmd
}

type sessionEnrollments struct {
	sessionID   string
	enrollments []*dynamic.Node
}

// groupBySession groups enrollments by course_session.id, keeping the order
// in which sessions first appear.
func groupBySession(enrollments []*dynamic.Node) []sessionEnrollments {
	var groups []sessionEnrollments
	index := map[string]int{}

	for _, enrollment := range enrollments {
		sessionID := ""
		if id, err := enrollment.Lookup("course_session.id"); err == nil {
			sessionID = id.String()
		}

		i, ok := index[sessionID]
		if !ok {
			i = len(groups)
			index[sessionID] = i
			groups = append(groups, sessionEnrollments{sessionID: sessionID})
		}

		groups[i].enrollments = append(groups[i].enrollments, enrollment)
	}

	return groups
}

type enrollmentRow struct {
	ID             string `header:"ENROLLMENT ID"`
	User           string `header:"USER"`
	AcceptedInvite string `header:"ACCEPTED INVITE"`
	EnrolledOn     string `header:"ENROLLED ON"`
	Status         string `header:"STATUS"`
	Type           string `header:"TYPE"`
}

// enrollmentRows skips instructors.
func enrollmentRows(enrollments []*dynamic.Node, loc *time.Location) []enrollmentRow {
	rows := make([]enrollmentRow, 0, len(enrollments))

	for _, enrollment := range enrollments {
		relationship := enrollment.Text("relationship_type")
		if relationship == "instructor" {
			continue
		}

		rows = append(rows, enrollmentRow{
			ID:             enrollment.Text("id"),
			User:           enrollment.Text("created_by"),
			AcceptedInvite: enrollment.Text("accepted_invite"),
			EnrolledOn:     displayTime(enrollment, "enrolled_on", loc),
			Status:         fmt.Sprintf("%s - %s", enrollment.Text("status"), enrollment.Text("progress")),
			Type:           relationship,
		})
	}

	return rows
}
