package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"gooze.dev/pkg/winnow/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "winnow"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	formatFlagName   = "format"
	ledgerFlagName   = "ledger"
	noLedgerFlagName = "no-ledger"
	logFileFlagName  = "log-file"
	verboseFlagName  = "verbose"

	outputFlagName             = "out"
	parallelFlagName           = "parallel"
	timeoutThresholdFlagName   = "timeout-threshold"
	exceptionThresholdFlagName = "exception-threshold"
	maxMutantsFlagName         = "max-mutants"
	budgetFlagName             = "budget"
	mutantTimeoutFlagName      = "mutant-timeout"
	rescueGoalsFlagName        = "rescue-goals"
	modeFlagName               = "mode"
	stagesFlagName             = "stages"
	seedFlagName               = "seed"
	harnessFlagName            = "harness"
	metricsFileFlagName        = "metrics-file"
	journalDirFlagName         = "journal-dir"

	suiteFlagName = "suite"
	runsFlagName  = "runs"

	formatConfigKey             = "output.format"
	ledgerConfigKey             = "ledger.path"
	noLedgerConfigKey           = "ledger.disabled"
	outputConfigKey             = "minimize.output"
	parallelConfigKey           = "minimize.parallel"
	timeoutThresholdConfigKey   = "minimize.timeout_threshold"
	exceptionThresholdConfigKey = "minimize.exception_threshold"
	maxMutantsConfigKey         = "minimize.max_mutants_per_test"
	budgetConfigKey             = "minimize.phase_budget"
	mutantTimeoutConfigKey      = "minimize.mutant_timeout"
	rescueGoalsConfigKey        = "minimize.rescue_goals"
	modeConfigKey               = "minimize.selection_mode"
	stagesConfigKey             = "minimize.selection_stages"
	seedConfigKey               = "minimize.seed"
	journalDirConfigKey         = "minimize.journal_dir"
	harnessConfigKey            = "harness.command"
	metricsFileConfigKey        = "metrics.file"

	defaultFormat     = "text"
	defaultLedgerPath = ".winnow/ledger.db"
	defaultParallel   = 1
	defaultRuns       = 10

	envPrefix = "WINNOW"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".winnow.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	defaults := domain.DefaultConfig()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(formatConfigKey, defaultFormat)
	viper.SetDefault(ledgerConfigKey, defaultLedgerPath)
	viper.SetDefault(noLedgerConfigKey, false)
	viper.SetDefault(outputConfigKey, "")
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(timeoutThresholdConfigKey, defaults.TimeoutThreshold)
	viper.SetDefault(exceptionThresholdConfigKey, defaults.ExceptionThreshold)
	viper.SetDefault(maxMutantsConfigKey, defaults.MaxMutantsPerTest)
	viper.SetDefault(budgetConfigKey, defaults.PhaseTimeBudget)
	viper.SetDefault(mutantTimeoutConfigKey, defaults.MutantTimeout)
	viper.SetDefault(rescueGoalsConfigKey, defaults.RescueGoals)
	viper.SetDefault(modeConfigKey, string(defaults.SelectionMode))
	viper.SetDefault(stagesConfigKey, []string{})
	viper.SetDefault(seedConfigKey, defaults.Seed)
	viper.SetDefault(journalDirConfigKey, "")
	viper.SetDefault(harnessConfigKey, []string{})
	viper.SetDefault(metricsFileConfigKey, "")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// minimizeConfig assembles the domain configuration from viper keys, so
// config file, environment and flags all feed it.
func minimizeConfig() domain.Config {
	return domain.Config{
		TimeoutThreshold:   viper.GetInt(timeoutThresholdConfigKey),
		ExceptionThreshold: viper.GetInt(exceptionThresholdConfigKey),
		MaxMutantsPerTest:  viper.GetInt(maxMutantsConfigKey),
		PhaseTimeBudget:    viper.GetDuration(budgetConfigKey),
		MutantTimeout:      viper.GetDuration(mutantTimeoutConfigKey),
		RescueGoals:        viper.GetBool(rescueGoalsConfigKey),
		SelectionMode:      domain.SelectionMode(viper.GetString(modeConfigKey)),
		Stages:             viper.GetStringSlice(stagesConfigKey),
		Seed:               viper.GetInt64(seedConfigKey),
		JournalDir:         viper.GetString(journalDirConfigKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
