package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/c9s/mtcli/pkg/cmd/cmdutil"
	"github.com/c9s/mtcli/pkg/config"
	"github.com/c9s/mtcli/pkg/envvar"
	"github.com/c9s/mtcli/pkg/runner"
	"github.com/c9s/mtcli/pkg/service"
	"github.com/c9s/mtcli/pkg/style"
	"github.com/c9s/mtcli/pkg/types"
)

func init() {
	addMACDFlags(macdCmd.Flags())
	RootCmd.AddCommand(macdCmd)
}

func addMACDFlags(flags *pflag.FlagSet) {
	flags.StringP("symbol", "s", config.DefaultSymbol, "instrument symbol")
	flags.Int("dias", config.DefaultDays, "days of history")
	flags.IntP("period", "p", config.DefaultPeriod, "bar period in minutes, one of "+types.SupportedPeriodsString())
	flags.Bool("salvar", false, "save the values to {symbol}macd{period}min.csv")
	flags.Bool("save-klines", false, "dump the queried bars under {output-dir}/klines, readable by --exchange=csv")
	flags.String("exchange", config.DefaultExchange, "bar source: binance, okex, metatrader or csv")
	flags.String("output-dir", config.DefaultOutputDir, "directory of the saved csv file")
	flags.String("cron", "", "cron spec with seconds to re-run the computation, e.g. \"0 */5 * * * *\"")
	flags.Bool("no-color", false, "disable the colors")
}

// go run ./cmd/mtcli macd --exchange=binance --symbol=BTCUSDT --period=15 --dias=2 --salvar
var macdCmd = &cobra.Command{
	Use:          "macd",
	Short:        "compute the MACD of the recent bars of a symbol",
	SilenceUsage: true,
	RunE:         runMACD,
}

// resolveConfig layers the flags and the MTCLI_* environment variables over the loaded config
func resolveConfig(flags *pflag.FlagSet, base *config.Config) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("db-driver", EnvVarPrefix+"_DB_DRIVER", "DB_DRIVER"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("db-dsn", EnvVarPrefix+"_DB_DSN", "DB_DSN"); err != nil {
		return nil, err
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	v.SetDefault("symbol", base.Symbol)
	v.SetDefault("dias", base.Days)
	v.SetDefault("period", base.Period)
	v.SetDefault("salvar", base.Save)
	v.SetDefault("save-klines", base.SaveKLines)
	v.SetDefault("exchange", base.Exchange)
	v.SetDefault("output-dir", base.OutputDir)
	v.SetDefault("cron", base.Schedule.Cron)
	v.SetDefault("db-driver", base.Database.Driver)
	v.SetDefault("db-dsn", base.Database.DSN)

	c := *base
	c.Symbol = v.GetString("symbol")
	c.Days = v.GetInt("dias")
	c.Period = v.GetInt("period")
	c.Save = v.GetBool("salvar")
	c.SaveKLines = v.GetBool("save-klines")
	c.Exchange = v.GetString("exchange")
	c.OutputDir = v.GetString("output-dir")
	c.Schedule.Cron = v.GetString("cron")
	c.Database.Driver = v.GetString("db-driver")
	c.Database.DSN = v.GetString("db-dsn")
	return &c, nil
}

// handleRunError prints the recoverable errors and returns nil for them
func handleRunError(w io.Writer, c *config.Config, err error) error {
	red := color.New(color.FgRed)
	switch {
	case err == nil:
		return nil

	case errors.Is(err, types.ErrInvalidPeriod):
		red.Fprintf(w, "invalid period %d, use one of %s\n", c.Period, types.SupportedPeriodsString())
		return nil

	case errors.Is(err, runner.ErrNoDataReceived):
		red.Fprintf(w, "no data received for %s\n", c.Symbol)
		return nil
	}

	return err
}

func runMACD(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM)
		cancel()
	}()

	base, err := config.LoadOrDefault(viper.GetString("config"))
	if err != nil {
		return err
	}

	c, err := resolveConfig(cmd.Flags(), base)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		color.NoColor = true
	}

	stdout := cmd.OutOrStdout()

	// an invalid period never opens the session
	if _, err := types.ValidPeriod(c.Period); err != nil {
		return handleRunError(stdout, c, err)
	}

	if err := c.Validate(); err != nil {
		return err
	}

	exchangeName, err := types.ValidExchangeName(c.Exchange)
	if err != nil {
		return err
	}

	session, err := cmdutil.NewExchange(exchangeName)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, session.Close())
	}()

	var recorder runner.Recorder
	if c.Database.Enabled() {
		db, dbErr := cmdutil.ConnectDatabase(ctx, c.Database.Driver, c.Database.DSN)
		if dbErr != nil {
			return dbErr
		}

		defer func() {
			err = multierr.Append(err, db.Close())
		}()

		recorder = service.NewMACDService(db.DB)
	}

	tableStyle := style.NewDefaultTableStyle()
	if color.NoColor {
		tableStyle = style.NewPlainTableStyle()
	}

	r := &runner.Runner{
		Options: runner.Options{
			Symbol:     c.Symbol,
			Days:       c.Days,
			Period:     c.Period,
			Save:       c.Save,
			OutputDir:  c.OutputDir,
			SaveKLines: c.SaveKLines,
			MACD:       c.MACD,
		},
		Querier:    session,
		Exchange:   session.Name(),
		Stdout:     stdout,
		TableStyle: tableStyle,
		Recorder:   recorder,
	}

	if interval, ok := envvar.Duration(EnvVarPrefix + "_PAGE_INTERVAL"); ok {
		r.Limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	if pageLimit, ok := envvar.Int(EnvVarPrefix + "_PAGE_LIMIT"); ok {
		r.PageLimit = pageLimit
	}

	run := func(ctx context.Context) error {
		_, err := r.Run(ctx)
		return handleRunError(stdout, c, err)
	}

	if c.Schedule.Cron == "" {
		return run(ctx)
	}

	return runSchedule(ctx, stdout, c.Schedule.Cron, run)
}

// runSchedule runs once, then on every tick of the cron spec until the context is done.
// A tick is skipped while the previous run is still running.
func runSchedule(ctx context.Context, w io.Writer, spec string, run func(ctx context.Context) error) error {
	logger := cron.VerbosePrintfLogger(log.StandardLogger())
	scheduler := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := scheduler.AddFunc(spec, func() {
		if err := run(ctx); err != nil {
			log.WithError(err).Error("macd run failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	if err := run(ctx); err != nil {
		log.WithError(err).Error("macd run failed")
	}

	log.Infof("scheduled with %q, press ctrl-c to stop", spec)
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()
	fmt.Fprintln(w, "stopped")
	return nil
}
