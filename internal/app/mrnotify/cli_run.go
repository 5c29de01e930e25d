package mrnotify

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/melanx/mrnotify/pkg/cache"
	"github.com/melanx/mrnotify/pkg/common"
	"github.com/melanx/mrnotify/pkg/config"
	"github.com/melanx/mrnotify/pkg/detector"
	"github.com/melanx/mrnotify/pkg/logging"
	"github.com/melanx/mrnotify/pkg/metrics"
	"github.com/melanx/mrnotify/pkg/modrinth"
	"github.com/melanx/mrnotify/pkg/notifiers"
	"github.com/samber/lo"
)

// The options of a single run.
type RunOptions struct {
	// The path to the optional config file.
	ConfigFile string
	// Overrides the path of the cache.
	CacheFile string
	// Overrides the type of the cache.
	CacheType string
	// Additional files with the projects to track.
	ProjectFiles []string
	// Additional discord webhooks to notify.
	WebhookUrls []string
	// Only log the notifications and do not save the cache.
	DryRun bool
	// Log with debug level.
	Verbose bool
}

func RunCmd(args []string) error {
	flagSet, options := newRunFlagSet()
	flagSet.Parse(args)

	// Positional arguments: <webhook-url> <projects-file>
	switch flagSet.NArg() {
	case 0:
	case 2:
		options.WebhookUrls = append(options.WebhookUrls, flagSet.Arg(0))
		options.ProjectFiles = append(options.ProjectFiles, flagSet.Arg(1))
	default:
		flagSet.Usage()
		return fmt.Errorf("%w: please provide a webhook URL and a projects file", ErrUsage)
	}

	// Create a logger
	desiredLogLevel := lo.Ternary(options.Verbose, slog.LevelDebug, slog.LevelInfo)
	logger := logging.NewLogger(os.Stdout, desiredLogLevel).With(slog.String("run", uuid.NewString()))
	logger.Debug(fmt.Sprintf("Initialized logger with level: %s", desiredLogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Run(ctx, logger, options)
	if isUsageError(err) {
		flagSet.Usage()
	}
	return err
}

// Executes a full check with the given options.
func Run(ctx context.Context, logger *slog.Logger, options *RunOptions) error {
	logger.Info("Starting mrnotify run")
	startedAt := time.Now()

	// Read the configuration
	rootConfig, err := config.Load(options.ConfigFile)
	if err != nil {
		return err
	}
	applyOverrides(rootConfig, options)

	// Validate the inputs
	if len(rootConfig.Projects) == 0 && len(rootConfig.ProjectFiles) == 0 {
		return fmt.Errorf("%w: no projects or project files defined", ErrUsage)
	}
	if len(rootConfig.Notifiers) == 0 && !options.DryRun {
		return fmt.Errorf("%w: no webhook URL or notifiers defined", ErrUsage)
	}

	// Collect the tracked projects
	trackedProjectIds, err := collectProjects(logger, rootConfig)
	if err != nil {
		return err
	}

	// Prepare the cache
	store, err := cache.GetCacheStore(rootConfig.ToCacheSettings(logger))
	if err != nil {
		return err
	}
	knownVersions, err := store.Load()
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("Loaded %d known versions of %s from the %s cache", knownVersions.VersionCount(), common.GetSingularPluralStringSimple(knownVersions.Projects(), "project"), store.Type()))

	// Prepare the notifiers
	var notifierList []common.INotifier
	if options.DryRun {
		logger.Info("Dry run, notifications are only logged")
		notifierList = []common.INotifier{notifiers.NewNoopNotifier(&notifiers.NotifierSettings{Logger: logger, Type: common.NOTIFIER_TYPE_NOOP})}
	} else {
		notifierList, err = notifiers.GetNotifiers(rootConfig.ToNotifierSettings(logger))
		if err != nil {
			return err
		}
	}
	logger.Info(fmt.Sprintf("Prepared %s", common.GetSingularPluralStringSimple(notifierList, "notifier")))

	// Detect and announce
	detectorSettings := rootConfig.ToDetectorSettings(logger)
	detectorSettings.Client = modrinth.NewClient(rootConfig.ToClientSettings(logger))
	detectorSettings.Notifiers = notifierList
	updatedVersions, result, err := detector.NewDetector(detectorSettings).Run(ctx, trackedProjectIds, knownVersions)
	if err != nil {
		return err
	}

	// Persist the known versions
	if options.DryRun {
		logger.Info("Dry run, skipping saving the cache")
	} else if err := store.Save(updatedVersions); err != nil {
		return err
	}

	// Write the metrics
	if rootConfig.MetricsFile != "" {
		runMetrics := metrics.NewRunMetrics()
		runMetrics.Record(result, time.Since(startedAt), time.Now())
		if err := runMetrics.WriteToFile(rootConfig.MetricsFile); err != nil {
			return err
		}
		logger.Debug(fmt.Sprintf("Wrote metrics to '%s'", rootConfig.MetricsFile))
	}

	logger.Info(fmt.Sprintf("Finished mrnotify run in %s", time.Since(startedAt).Round(time.Millisecond)))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func newRunFlagSet() (*flag.FlagSet, *RunOptions) {
	options := &RunOptions{}
	flagSet := flag.NewFlagSet("run", flag.ExitOnError)
	flagSet.BoolVar(&options.Verbose, "verbose", false, "The flag to set in order to get verbose output")
	flagSet.BoolVar(&options.Verbose, "v", false, "Alias for -verbose")
	flagSet.StringVar(&options.ConfigFile, "config", "", "The path to the config file to read")
	flagSet.StringVar(&options.CacheFile, "cache", "", "Overrides the path to the cache of known versions")
	flagSet.StringVar(&options.CacheType, "cacheType", "", "Overrides the type of the cache (json, sqlite or memory)")
	flagSet.Var((*stringSliceFlag)(&options.ProjectFiles), "projects", "A file with projects to track. Can be passed multiple times")
	flagSet.BoolVar(&options.DryRun, "dryRun", false, "Only log the notifications and do not save the cache")
	flagSet.Usage = func() { printCmdUsage(os.Stderr, flagSet, "run", "[<webhook-url> <projects-file>]") }
	return flagSet, options
}

func applyOverrides(rootConfig *config.RootConfig, options *RunOptions) {
	for _, webhookUrl := range options.WebhookUrls {
		rootConfig.Notifiers = append(rootConfig.Notifiers, &config.NotifierConfig{
			Type: common.NOTIFIER_TYPE_DISCORD,
			Url:  webhookUrl,
		})
	}
	rootConfig.ProjectFiles = lo.Union(rootConfig.ProjectFiles, options.ProjectFiles)
	if options.CacheFile != "" {
		rootConfig.Cache.Path = options.CacheFile
	}
	if options.CacheType != "" {
		rootConfig.Cache.Type = common.CacheType(options.CacheType)
	}
}

func collectProjects(logger *slog.Logger, rootConfig *config.RootConfig) ([]string, error) {
	projectFiles, err := common.ResolveProjectFiles(rootConfig.ProjectFiles)
	if err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("Reading projects from %s", common.GetSingularPluralStringSimple(projectFiles, "file")))
	projectsFromFiles, err := common.ReadProjectFiles(projectFiles, rootConfig.CommentPrefix)
	if err != nil {
		return nil, err
	}
	return slices.Concat(rootConfig.Projects, projectsFromFiles), nil
}

func isUsageError(err error) bool {
	return err != nil && errors.Is(err, ErrUsage)
}
