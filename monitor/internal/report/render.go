package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/pkg/types"
)

// Separator is placed between consecutive user reports by Join.
const Separator = "\n\n---\n\n"

// Render formats one user's input and derived metrics.
func Render(res compute.Result) string {
	in := res.Input
	c := res.Calculations

	predicted := types.FormatFloat(c.PredictedActivity)
	// Walkthrough lines show the values the metrics were computed from.
	// Integer fields submitted as reals differ from their Input Data echo.
	steps := types.FormatValue(in.CurrentSteps)
	factor := in.Display(types.FieldActivityIntensityFactor)

	var b strings.Builder
	b.WriteString("# Health Monitoring Summary\n\n")
	fmt.Fprintf(&b, "**User ID:** %s\n\n", in.Display(types.FieldUserID))
	b.WriteString("---\n\n")

	b.WriteString("## Input Data:\n")
	for _, f := range types.RequiredFields {
		fmt.Fprintf(&b, "- %s: %s\n", f, in.Display(f))
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Detailed Calculations:\n\n")

	b.WriteString("1. Predicted Activity Calculation:\n")
	b.WriteString(` - Formula: $$ \text{Predicted Activity} = \text{current_steps} \times \text{activity_intensity_factor} $$` + "\n")
	b.WriteString(" - Steps: Multiply current_steps by activity_intensity_factor.\n")
	fmt.Fprintf(&b, " - Calculation: %s \\times %s = %s\n", steps, factor, predicted)
	fmt.Fprintf(&b, " - Calculated Value: **%s steps**\n\n", predicted)

	b.WriteString("2. Heart Rate Category:\n")
	fmt.Fprintf(&b, " - IF heart_rate < %d, THEN %q.\n", compute.HeartRateLow, compute.HeartBelowOptimal)
	fmt.Fprintf(&b, " - ELSE IF heart_rate between %d and %d, THEN %q.\n", compute.HeartRateLow, compute.HeartRateHigh, compute.HeartOptimal)
	fmt.Fprintf(&b, " - ELSE, %q.\n", compute.HeartAboveOptimal)
	fmt.Fprintf(&b, " - Given heart_rate = %s\n", types.FormatValue(in.HeartRate))
	fmt.Fprintf(&b, " - Result: **%s**\n\n", c.HeartRateCategory)

	b.WriteString("3. Environmental Quality Category:\n")
	fmt.Fprintf(&b, " - IF environmental_index ≥ %s, THEN %q.\n", literal(compute.EnvGoodMin), compute.EnvGood)
	fmt.Fprintf(&b, " - ELSE IF environmental_index ≥ %s, THEN %q.\n", literal(compute.EnvModerateMin), compute.EnvModerate)
	fmt.Fprintf(&b, " - ELSE, %q.\n", compute.EnvPoor)
	fmt.Fprintf(&b, " - Given environmental_index = %s\n", in.Display(types.FieldEnvironmentalIndex))
	fmt.Fprintf(&b, " - Result: **%s**\n\n", c.EnvironmentalQuality)

	b.WriteString("4. Ambient Temperature Impact:\n")
	fmt.Fprintf(&b, " - IF ambient_temperature between %s and %s, THEN %q.\n", literal(compute.TempIdealMin), literal(compute.TempIdealMax), compute.TempIdeal)
	fmt.Fprintf(&b, " - ELSE IF ambient_temperature < %s, THEN %q.\n", literal(compute.TempIdealMin), compute.TempTooCold)
	fmt.Fprintf(&b, " - ELSE, %q.\n", compute.TempTooHot)
	fmt.Fprintf(&b, " - Given ambient_temperature = %s\n", in.Display(types.FieldAmbientTemperature))
	fmt.Fprintf(&b, " - Result: **%s**\n\n", c.TemperatureImpact)

	normalized := types.FormatFloat(c.NormalizedActivity)
	heartComp := types.FormatFloat(c.HeartComponent)
	envComp := types.FormatFloat(c.EnvComponent)
	score := types.FormatFloat(c.CompositeFitnessScore)

	b.WriteString("5. Composite Fitness Score Calculation:\n")
	b.WriteString(` - Formula: $$ \text{Composite Fitness Score} = \left(\frac{\text{Predicted Activity}}{10000} \times 0.5\right) + \left(\text{Heart Rate Factor} \times 0.3\right) + \left(\text{Environmental Factor} \times 0.2\right) $$` + "\n")
	b.WriteString(" - Steps:\n")
	fmt.Fprintf(&b, "   1. Normalized activity: $%s \\div 10000 \\times 0.5 = %s$\n", predicted, normalized)
	fmt.Fprintf(&b, "   2. Heart Rate Factor: Heart rate category is %q which gives a factor of %s\n", c.HeartRateCategory, literal(c.HeartRateFactor))
	fmt.Fprintf(&b, "      Heart component: $%s \\times 0.3 = %s$\n", literal(c.HeartRateFactor), heartComp)
	fmt.Fprintf(&b, "   3. Environmental Factor: Environmental quality is %q which gives a factor of %s\n", c.EnvironmentalQuality, literal(c.EnvironmentalFactor))
	fmt.Fprintf(&b, "      Environmental component: $%s \\times 0.2 = %s$\n", literal(c.EnvironmentalFactor), envComp)
	fmt.Fprintf(&b, "   4. Composite Fitness Score: $%s + %s + %s = %s$\n", normalized, heartComp, envComp, score)
	fmt.Fprintf(&b, " - Calculated Value: **%s**\n\n", score)

	b.WriteString("---\n\n")

	b.WriteString("## Final Recommendation:\n\n")
	fmt.Fprintf(&b, "- Recommendation: **%s**\n", c.Recommendation)
	fmt.Fprintf(&b, "- Status: **%s**\n", c.Status)

	return b.String()
}

// Join concatenates rendered user reports, leading with a blank line pair.
func Join(reports []string) string {
	return "\n\n" + strings.Join(reports, Separator)
}

// RenderAll renders and joins the reports for every result.
func RenderAll(results []compute.Result) string {
	reports := make([]string, 0, len(results))
	for _, r := range results {
		reports = append(reports, Render(r))
	}
	return Join(reports)
}

// literal prints rule constants and factors as written: 75, 0.8, 1.
func literal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
