package config

// OutputConfig selects where dispatch results are written. Empty paths skip
// the corresponding file.
type OutputConfig struct {
	// CSVPath receives the assignment table in the report column layout.
	CSVPath string `json:"csv_path"`
	// JSONPath receives the same records as a JSON array.
	JSONPath string `json:"json_path"`
	// UnservedPath receives the calls no vehicle could reach.
	UnservedPath string `json:"unserved_path"`
}
