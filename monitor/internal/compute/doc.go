// Package compute derives health metrics from a validated UserRecord.
//
// Compute is a pure function: identical input yields an identical Result.
// It derives, in order:
//
//  1. predicted activity = current_steps × activity_intensity_factor
//  2. heart-rate category (Below Optimal <60, Optimal 60–100, Above Optimal >100)
//  3. environmental quality (Good ≥75, Moderate ≥50, Poor)
//  4. temperature impact (Ideal Temperature 15–25, Too Cold <15, Too Hot)
//  5. composite fitness score:
//     activity(50%, per 10000 steps) + heart factor(30%) + environment factor(20%)
//
// and a final recommendation, which is "Continue current fitness plan" only
// when the score is at least 0.75 AND the heart rate is Optimal AND the
// temperature is Ideal.
//
// Every reported number is rounded to two decimals independently from the
// unrounded intermediates; reports embed these rounded values literally.
package compute
