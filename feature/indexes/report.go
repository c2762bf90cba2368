package indexes

import (
	"bytes"
	"fmt"
	"time"
)

// RenderReport renders a run as plain text: a header, the plan summary and the
// status lines in output order.
func RenderReport(at time.Time, dryRun bool, out *Outcome, runErr error) []byte {
	var b bytes.Buffer

	mode := "apply"
	if dryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(&b, "# index-manager %s at %s\n", mode, at.UTC().Format(time.RFC3339))

	if out != nil && out.Plan != nil {
		sum := out.Plan.Summary
		fmt.Fprintf(&b, "# current schema: %s\n", out.Plan.CurrentSchema)
		fmt.Fprintf(&b, "# desired: %d, existing: %d, to create: %d, to drop: %d\n",
			sum.Desired, sum.Existing, sum.Creates, sum.Drops)
	}
	if out != nil && out.Result != nil {
		res := out.Result
		fmt.Fprintf(&b, "# created: %d, dropped: %d, skipped: %d, failed: %d\n",
			res.Created, res.Dropped, res.Skipped, res.Failed)
		b.WriteString("\n")
		for _, line := range res.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if runErr != nil {
		fmt.Fprintf(&b, "\nerror: %v\n", runErr)
	}

	return b.Bytes()
}
