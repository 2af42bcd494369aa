package config

import "ucclean/internal/ranking"

const (
	defaultConfigPath     = "~/.config/ucclean/config.toml"
	projectConfigName     = "ucclean.toml"
	defaultInputPath      = "nc_sept_2024.csv"
	defaultOutputPath     = "nc_data.csv"
	defaultStateDir       = "~/.local/share/ucclean"
	defaultFilingIDColumn = "Filing Number"
	defaultDesignationCol = "Official Designation"
	defaultFilingDateCol  = "Filing Date"
	defaultCutoff         = "2024-08-31"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryKeep    = 200
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Input:    defaultInputPath,
			Output:   defaultOutputPath,
			StateDir: defaultStateDir,
		},
		Columns: Columns{
			FilingID:    defaultFilingIDColumn,
			Designation: defaultDesignationCol,
			FilingDate:  defaultFilingDateCol,
		},
		Filter: Filter{
			Cutoff: defaultCutoff,
		},
		Ranking: Ranking{
			Hierarchy:        append([]string(nil), ranking.DefaultHierarchy...),
			OverrideKeywords: append([]string(nil), ranking.DefaultOverrideKeywords...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
	}
}
