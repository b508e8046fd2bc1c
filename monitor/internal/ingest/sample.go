package ingest

// SampleCSV is the built-in demonstration dataset: ten synthetic users in
// delimited-text form.
const SampleCSV = `user_id,current_steps,heart_rate,ambient_temperature,environmental_index,activity_intensity_factor
U41,7100,75,20,80,1.1
U42,8200,80,21,85,1.2
U43,9000,90,19,70,1.0
U44,10000,95,18,90,1.3
U45,7500,65,22,75,1.1
U46,8000,70,20,60,1.2
U47,9500,85,23,80,1.0
U48,8700,78,21,88,1.2
U49,9100,92,24,77,1.1
U50,9800,88,19,82,1.0`
