// Package alerts evaluates threshold and category rules against computed
// user metrics.
//
// A rule condition has the form "<field> <op> <value>". Numeric fields
// (composite_fitness_score, heart_rate, predicted_activity, ...) accept
// > >= < <= == !=. Categorical fields (heart_rate_category,
// environmental_quality, temperature_impact, status) accept == and != and
// take the rest of the line as the value, so multi-word categories such as
// "Above Optimal" need no quoting.
//
// Engine remembers which (rule, user) pairs are firing between calls so a
// long-running watch loop logs each alert once when it fires and once when
// it resolves. Alerts never change the report text.
package alerts
