package larhits

type Configuration struct {
	MaxEvents             int    `json:"max_events"`
	Skip                  int    `json:"skip"`
	Verbosity             int    `json:"verbosity"`
	FileIn                string `json:"file_in"`
	TreeName              string `json:"tree_name"`
	FileOut               string `json:"file_out"`
	GeometryFile          string `json:"geometry_file"`
	RecoOption            string `json:"reco_option"`
	SettingsFile          string `json:"settings_file"`
	RunNumber             int    `json:"run_number"`
	NoDB                  bool   `json:"no_db"`
	DBDriver              string `json:"db_driver"`
	Host                  string `json:"host" env:"LARHITS_DB_HOST"`
	User                  string `json:"user" env:"LARHITS_DB_USER"`
	Passwd                string `json:"pass" env:"LARHITS_DB_PASS"`
	DBName                string `json:"dbname" env:"LARHITS_DB_NAME"`
	NumWorkers            int    `json:"num_workers"`
	Discard               bool   `json:"discard"`
	WriteData             bool   `json:"write_data"`
	CompressionLevel      int    `json:"compression_level"`
	LegacyDriftComparison bool   `json:"legacy_drift_comparison"`
	DisplayEventNumber    bool   `json:"display_event_number"`
	PrintRecoStatus       bool   `json:"print_reco_status"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
