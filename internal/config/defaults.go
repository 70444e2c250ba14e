package config

const (
	defaultMasterFile            = "~/.local/share/scrubber/master.csv"
	defaultOutputDir             = "~/.local/share/scrubber/output"
	defaultLogDir                = "~/.local/share/scrubber/logs"
	defaultIDColumn              = "Payer ID"
	defaultMinPartialAliasLength = 4
	defaultOutputPrefix          = "Scrubbed_"
	defaultScrubWorkers          = 1
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultChannelColumns() []string {
	return []string{"Clearinghouse ID", "CH Names", "Source_File"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MasterFile: defaultMasterFile,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Matching: Matching{
			IDColumn:              defaultIDColumn,
			ChannelColumns:        defaultChannelColumns(),
			MinPartialAliasLength: defaultMinPartialAliasLength,
			ChannelTiers:          true,
			PartialMatchTier:      true,
		},
		Output: Output{
			Prefix: defaultOutputPrefix,
		},
		Scrub: Scrub{
			Workers: defaultScrubWorkers,
		},
		Ledger: Ledger{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
