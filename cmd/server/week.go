package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"clinic-scheduler/internal/handler"
	"clinic-scheduler/internal/model"
)

const continuation = "·"

func weekCmd() *cobra.Command {
	var (
		addr      string
		offset    int
		doctor    string
		treatment string
	)
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print one week of the schedule from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			week, err := handler.NewClient(conn).GetWeek(ctx, &handler.GetWeekRequest{
				WeekOffset: offset,
				Doctor:     doctor,
				Treatment:  treatment,
			})
			if err != nil {
				return err
			}
			return renderWeek(cmd.OutOrStdout(), week)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:50051", "schedule service address")
	cmd.Flags().IntVar(&offset, "offset", 0, "weeks relative to the current one")
	cmd.Flags().StringVar(&doctor, "doctor", model.All, "only show this doctor")
	cmd.Flags().StringVar(&treatment, "treatment", model.All, "only show this treatment")
	return cmd
}

// renderWeek prints the grid: a time column then one column per day. The
// patient is named where an appointment starts and later slots it covers
// show a dot.
func renderWeek(w io.Writer, week *handler.GetWeekResponse) error {
	if _, err := fmt.Fprintln(w, week.Range); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"Time"}
	for _, d := range week.Days {
		label := d.Label
		if d.Today {
			label += " *"
		}
		header = append(header, label)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range week.Rows {
		line := []string{row.Slot.Label}
		for _, c := range row.Cells {
			switch {
			case c.Appointment == nil:
				line = append(line, "")
			case c.IsStart:
				line = append(line, c.Appointment.Patient)
			default:
				line = append(line, continuation)
			}
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	return tw.Flush()
}
