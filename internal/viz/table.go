package viz

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// WriteTable prints one row per state: step, time, height, velocity.
func WriteTable(w io.Writer, tr dynamo.Trajectory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "STEP\tTIME\tHEIGHT\tVELOCITY\t")
	for i, s := range tr {
		fmt.Fprintf(tw, "%d\t%.2f\t%.4f\t%.4f\t\n", i, s.Time, s.Height, s.Velocity)
	}
	return tw.Flush()
}

// WriteSentences prints each state as a sentence.
func WriteSentences(w io.Writer, tr dynamo.Trajectory) error {
	for _, s := range tr {
		_, err := fmt.Fprintf(w, "The height is %5.2f and the velocity is %5.2f after %5.2f seconds\n",
			s.Height, s.Velocity, s.Time)
		if err != nil {
			return err
		}
	}
	return nil
}
