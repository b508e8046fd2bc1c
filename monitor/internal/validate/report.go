package validate

import (
	"fmt"
	"strings"

	"github.com/vitalsight/healthmon/pkg/types"
)

// MsgSuccess closes a report for a batch without errors.
const MsgSuccess = "Data validation is successful! Would you like to proceed with analysis or provide another dataset?"

func renderReport(d Details) string {
	var b strings.Builder
	b.WriteString("# Data Validation Report\n")
	b.WriteString("## Data Structure Check:\n")
	fmt.Fprintf(&b, "- Number of users: %d\n", d.NumUsers)
	fmt.Fprintf(&b, "- Number of fields per record: %d\n\n", len(types.RequiredFields))

	b.WriteString("## Required Fields Check:\n")
	for _, fc := range d.FieldsCheck {
		state := "invalid"
		if fc.Status == StatusPresent {
			state = "valid"
		}
		fmt.Fprintf(&b, "- %s: %s\n", fc.Field, state)
	}

	b.WriteString("\n## Validation Summary:\n")
	if len(d.Errors) == 0 {
		b.WriteString(MsgSuccess)
		return b.String()
	}
	for _, e := range d.Errors {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	return b.String()
}
