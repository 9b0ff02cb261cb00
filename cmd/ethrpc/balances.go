package main

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/ethrpc/eth"
	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	blockID := eth.Latest
	cmd := &cobra.Command{
		Use:   "balance [ADDRESS]...",
		Short: "Print the wei balance of one or more addresses.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs := make([]common.Address, len(args))
			for i, arg := range args {
				addr, err := parseAddress(arg)
				if err != nil {
					return err
				}
				addrs[i] = addr
			}

			if len(addrs) == 1 {
				balance, err := client.Balance(cmd.Context(), addrs[0], blockID)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), balance)
				return err
			}
			return printBalances(cmd, addrs, blockID)
		},
	}
	cmd.Flags().Var(&blockID, blockF, blockFlagUsage)
	return cmd
}

// printBalances queries the balances concurrently and renders them in
// the order the addresses were given.
func printBalances(cmd *cobra.Command, addrs []common.Address, blockID eth.BlockNumber) error {
	balances := make([]*big.Int, len(addrs))
	errs := make([]error, len(addrs))

	wg := conc.NewWaitGroup()
	for i, addr := range addrs {
		i, addr := i, addr
		wg.Go(func() {
			balances[i], errs[i] = client.Balance(cmd.Context(), addr, blockID)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("balance of %s: %w", addrs[i].Hex(), err)
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Address", "Wei"})
	total := new(big.Int)
	for i, addr := range addrs {
		table.Append([]string{addr.Hex(), balances[i].String()})
		total.Add(total, balances[i])
	}
	table.SetFooter([]string{"Total", total.String()})
	table.Render()
	return nil
}
