package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelrosejr/pytellum/internal/dynamic"
	"github.com/michaelrosejr/pytellum/internal/logging"
)

func newSessionsCmd(cli *CLI, options *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "sessions COURSE_ID",
		Aliases: []string{"show-course-sessions"},
		Short:   "List the sessions of a course",
		Example: "$ intellim sessions 12345",
		Args:    ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID := args[0]

			s, err := newSession(cli, options)
			if err != nil {
				return err
			}

			logging.Debugf("call api: list sessions of course %s", courseID)
			result, err := emptyOnAPIError(s.client.ListCourseSessions(cmd.Context(), courseID))
			if err != nil {
				return err
			}

			if format != "" {
				return writeStructured(cli.Stdout, result, format)
			}

			sessions := items(result, "course_sessions")
			if len(sessions) == 0 {
				cli.Output("No sessions found for course ID %s", courseID)
				return nil
			}

			cli.Output("%d %s found for course ID %s - %s.", len(sessions), pluralize("session", len(sessions)), courseID, sessions[0].Text("name"))
			cli.Output("")
			printTable(sessionRows(sessions, s.location), cli.Stdout)
			return nil
		},
	}

	addFormatFlag(cmd.Flags(), &format)
	return cmd
}

type sessionRow struct {
	ID         string `header:"SESSION ID"`
	CourseID   string `header:"COURSE ID"`
	Name       string `header:"NAME"`
	Status     string `header:"STATUS"`
	Letters    string `header:"LETTERS"`
	StartDate  string `header:"START DATE"`
	EndDate    string `header:"END DATE"`
	Active     string `header:"ACTIVE"`
	Enrollment string `header:"ENROLLMENT"`
	Teams      string `header:"TEAMS"`
}

func sessionRows(sessions []*dynamic.Node, loc *time.Location) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))

	for _, cs := range sessions {
		status := "N/A"
		if cs.Has("status") {
			status = cs.Text("status")
		}

		letters := 0
		if triggers, err := cs.Get("letter_triggers"); err == nil {
			letters = triggers.Len()
		}

		courseID := ""
		if course, err := cs.Get("course"); err == nil {
			courseID = course.Text("id")
		}

		rows = append(rows, sessionRow{
			ID:         cs.Text("id"),
			CourseID:   courseID,
			Name:       cs.Text("name"),
			Status:     status,
			Letters:    strconv.Itoa(letters),
			StartDate:  displayTime(cs, "start_on", loc),
			EndDate:    displayTime(cs, "end_on", loc),
			Active:     cs.Text("is_active"),
			Enrollment: fmt.Sprintf("0/%s", cs.Text("attendance_max")),
			Teams:      teams(cs),
		})
	}

	return rows
}

// teams reports whether the first event of a session has a location, which
// is how online sessions show up.
func teams(cs *dynamic.Node) string {
	event, err := cs.Lookup("events.0")
	if err != nil || !event.Has("location_type") {
		return "No"
	}

	return "Yes - " + event.Text("id")
}
