package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := store.Set(key, value); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Prints the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, loaded, err := store.Get(key)
			if err != nil {
				return err
			}
			if !loaded {
				return fmt.Errorf("key %q not found", key)
			}
			fmt.Println(value)
			return nil
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Prints all in-memory entries of the store",
		Long:  "Prints all in-memory entries of the store. For a cache-limited store this is the current cache contents, not the full dataset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store.ToList()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s=%s\n", e.Key, e.Value)
			}
			fmt.Printf("(%d entries)\n", len(entries))
			return nil
		},
	}
)
