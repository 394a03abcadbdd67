package config

const (
	defaultStateDir          = "~/.local/share/remuxer"
	defaultLogDir            = "~/.local/share/remuxer/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 30
	defaultLibraryPageSize   = 100
	defaultMkvMergeBinary    = "mkvmerge"
	defaultMkvExtractBinary  = "mkvextract"
	defaultOCRBinary         = "subtitleedit"
	defaultStaleScratchHours = 24
	defaultStripMode         = "none"
	defaultExtractMode       = "none"
	defaultOCRMode           = "none"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Library: Library{
			Extensions: []string{"mkv"},
			PageSize:   defaultLibraryPageSize,
		},
		Policy: Policy{
			WhitelistedLanguages: []string{"eng"},
			KeepDefaultTrack:     true,
			StripMode:            defaultStripMode,
			ExtractMode:          defaultExtractMode,
			ExtractOnlyTextSubs:  true,
			OCRMode:              defaultOCRMode,
			OCRAlways:            false,
		},
		Tools: Tools{
			MkvMerge:   defaultMkvMergeBinary,
			MkvExtract: defaultMkvExtractBinary,
			OCR:        defaultOCRBinary,
		},
		OCR: OCR{
			MaxParallel: 0,
		},
		Workflow: Workflow{
			StaleScratchHours: defaultStaleScratchHours,
			CheckFreeSpace:    true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
