package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-adoption-shelter/internal/app"
	"pet-adoption-shelter/internal/config"
	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/platform/logger"
)

// @title Pet Adoption Shelter API
// @version 1.0
// @description Listings de animales, solicitudes de adopción y roster del refugio.
// @BasePath /

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shelter",
	Short: "Pet adoption shelter service",
	Long: `Servicio del refugio: listings de animales, solicitudes de adopción,
employees y capacidad. "serve" levanta la API HTTP; el resto de los comandos
operan directo sobre el mismo store (sqlite por defecto).`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distingue los errores de dominio para scripts que usan el CLI.
func exitCode(err error) int {
	switch errs.KindName(err) {
	case "BadRequest":
		return 2
	case "NotFound":
		return 3
	case "Forbidden":
		return 4
	default:
		return 1
	}
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)
	v.SetDefault("actor", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
}

func addPersistentFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml/json/toml)")
	pf.String("storage", "", "storage driver: memory, sqlite, postgres")
	pf.String("sqlite-path", "", "sqlite database file")
	pf.String("dsn", "", "postgres dsn")
	pf.String("owner", "", "shelter owner principal (only used on first start)")
	pf.String("log-level", "", "debug, info, warn, error")
	pf.String("actor", "", "principal that runs CLI operations")
	pf.Bool("json", false, "output JSON")

	bind("storage.driver", "storage")
	bind("storage.sqlite_path", "sqlite-path")
	bind("storage.dsn", "dsn")
	bind("shelter.owner", "owner")
	bind("log.level", "log-level")
	bind("actor", "actor")
	bind("json", "json")
}

func bind(key, flag string) {
	_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(capacityCmd())
	rootCmd.AddCommand(employeesCmd())
	rootCmd.AddCommand(listingsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(tokenCmd())
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// withApp abre el store y arma los services para un comando de la CLI.
func withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.LoggerOptions()
	opts.Output = os.Stderr
	a, err := app.New(ctx, cfg, logger.New(opts))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func actor() string {
	return strings.TrimSpace(viper.GetString("actor"))
}
