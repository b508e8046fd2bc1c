// Package export renders pipeline results for machines.
//
// Metrics holds a private Prometheus registry with one gauge family per
// derived value, labelled by user_id, plus batch gauges that are set even
// when the run failed:
//
//	healthmon_predicted_activity{user_id}
//	healthmon_normalized_activity{user_id}
//	healthmon_heart_component{user_id}
//	healthmon_env_component{user_id}
//	healthmon_composite_fitness_score{user_id}
//	healthmon_user_status{user_id,status}       always 1
//	healthmon_batch_users
//	healthmon_batch_validation_errors
//	healthmon_batch_ok                           1 on success, else 0
//
// Observe replaces the previous run's series, so a long-running watch loop
// never exposes users that have left the input. When a user_id repeats in
// one batch the last record wins.
//
// WriteTextfile writes the exposition atomically (temp file and rename) for
// the node_exporter textfile collector.
//
// NewDocument and WriteJSON build the JSON rendering.
package export
