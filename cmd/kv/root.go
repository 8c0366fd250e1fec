package kv

import (
	"time"

	"github.com/ValentinKolb/dDict/cmd/util"
	"github.com/ValentinKolb/dDict/lib/codec"
	"github.com/ValentinKolb/dDict/lib/dict"
	"github.com/ValentinKolb/dDict/lib/dict/cdict"
	"github.com/ValentinKolb/dDict/lib/dict/mdict"
	"github.com/ValentinKolb/dDict/lib/durable"
	"github.com/ValentinKolb/dDict/lib/durable/engines/sqlet"
	"github.com/spf13/cobra"
)

var (
	store dict.IDict[string, string]

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform dictionary operations on a store",
		PersistentPreRunE: setupStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common store flags to the KV command
	util.SetupStoreFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(listCmd)
}

// setupStore opens the dictionary the subcommands operate on
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	factory := newEngineFactory(util.GetStorePath(), util.GetTimeout())

	// A cache limit switches to the bounded variant; the default is the
	// fully mirrored dictionary
	var err error
	if limit := util.GetCacheLimit(); limit > 0 {
		store, err = cdict.New(factory, codec.String(), codec.String(), limit)
	} else {
		store, err = mdict.New(factory, codec.String(), codec.String())
	}
	return err
}

func newEngineFactory(path string, timeout time.Duration) dict.EngineFactory {
	return func() (durable.Engine, error) {
		opts := sqlet.DefaultOptions(path)
		opts.Timeout = timeout
		return sqlet.New(opts)
	}
}
