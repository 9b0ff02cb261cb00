package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/NethermindEth/ethrpc/eth"
	"github.com/NethermindEth/ethrpc/validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func parseAddress(s string) (common.Address, error) {
	if err := validator.Validator().Var(s, "eth_addr"); err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseHash(s string) (common.Hash, error) {
	if !isHash(s) {
		return common.Hash{}, fmt.Errorf("invalid hash %q", s)
	}
	return common.HexToHash(s), nil
}

func isHash(s string) bool {
	return validator.Validator().Var(s, "hash32") == nil
}

func parseBlockID(s string) (eth.BlockNumber, error) {
	var number eth.BlockNumber
	if err := number.Set(s); err != nil {
		return 0, fmt.Errorf("invalid block id %q: %w", s, err)
	}
	return number, nil
}

func parseQuantity(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "0x") {
		return hexutil.DecodeBig(s)
	}
	quantity, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", s)
	}
	return quantity, nil
}

func coinbaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coinbase",
		Short: "Print the node's coinbase address.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coinbase, err := client.Coinbase(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), coinbase.Hex())
			return err
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Print the addresses owned by the node.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := client.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, account := range accounts {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), account.Hex()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func gasPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gas-price",
		Short: "Print the node's gas price estimate in wei.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			price, err := client.GasPrice(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), price)
			return err
		},
	}
}

func blockNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block-number",
		Short: "Print the height of the most recent block.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			number, err := client.BlockNumber(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), number)
			return err
		},
	}
}

func blockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block [BLOCK_HASH or BLOCK_ID]",
		Short: "Print block information.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fullTxs, err := cmd.Flags().GetBool(fullF)
			if err != nil {
				return err
			}

			var block *eth.Block
			if isHash(args[0]) {
				block, err = client.BlockByHash(cmd.Context(), common.HexToHash(args[0]), fullTxs)
			} else {
				var number eth.BlockNumber
				if number, err = parseBlockID(args[0]); err == nil {
					block, err = client.BlockByNumber(cmd.Context(), number, fullTxs)
				}
			}
			if err != nil {
				return err
			}
			if block == nil {
				return fmt.Errorf("block %s not found", args[0])
			}
			return printJSON(cmd, block.Raw())
		},
	}
	cmd.Flags().Bool(fullF, false, fullFlagUsage)
	return cmd
}

func txCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tx [TRANSACTION_HASH] or tx [BLOCK_HASH or BLOCK_ID] [INDEX]",
		Short: "Print transaction information.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tx  *eth.Transaction
				err error
			)
			if len(args) == 1 {
				var hash common.Hash
				if hash, err = parseHash(args[0]); err == nil {
					tx, err = client.TransactionByHash(cmd.Context(), hash)
				}
			} else {
				var index uint64
				if index, err = strconv.ParseUint(args[1], 0, 64); err != nil {
					return fmt.Errorf("invalid transaction index %q", args[1])
				}
				if isHash(args[0]) {
					tx, err = client.TransactionByBlockHashAndIndex(cmd.Context(), common.HexToHash(args[0]), index)
				} else {
					var number eth.BlockNumber
					if number, err = parseBlockID(args[0]); err == nil {
						tx, err = client.TransactionByBlockNumberAndIndex(cmd.Context(), number, index)
					}
				}
			}
			if err != nil {
				return err
			}
			if tx == nil {
				return fmt.Errorf("transaction %s not found", strings.Join(args, " "))
			}
			return printJSON(cmd, tx.Raw())
		},
	}
}

func receiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [TRANSACTION_HASH]",
		Short: "Print the receipt of a mined transaction.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := parseHash(args[0])
			if err != nil {
				return err
			}
			receipt, err := client.TransactionReceipt(cmd.Context(), hash)
			if err != nil {
				return err
			}
			if receipt == nil {
				return fmt.Errorf("no receipt for transaction %s, it is pending or unknown", args[0])
			}
			return printJSON(cmd, receipt.Raw())
		},
	}
}

func txCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tx-count [BLOCK_HASH or BLOCK_ID]",
		Short: "Print the number of transactions in a block.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				count uint64
				err   error
			)
			if isHash(args[0]) {
				count, err = client.BlockTransactionCountByHash(cmd.Context(), common.HexToHash(args[0]))
			} else {
				var number eth.BlockNumber
				if number, err = parseBlockID(args[0]); err == nil {
					count, err = client.BlockTransactionCountByNumber(cmd.Context(), number)
				}
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
}

func nonceCmd() *cobra.Command {
	blockID := eth.Latest
	cmd := &cobra.Command{
		Use:   "nonce [ADDRESS]",
		Short: "Print the number of transactions sent from an address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			count, err := client.TransactionCount(cmd.Context(), addr, blockID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
	cmd.Flags().Var(&blockID, blockF, blockFlagUsage)
	return cmd
}

func codeCmd() *cobra.Command {
	blockID := eth.Latest
	cmd := &cobra.Command{
		Use:   "code [ADDRESS]",
		Short: "Print the contract bytecode deployed at an address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			code, err := client.Code(cmd.Context(), addr, blockID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(code))
			return err
		},
	}
	cmd.Flags().Var(&blockID, blockF, blockFlagUsage)
	return cmd
}

func storageCmd() *cobra.Command {
	blockID := eth.Latest
	cmd := &cobra.Command{
		Use:   "storage [ADDRESS] [POSITION]",
		Short: "Print the value stored at a position of an address, position zero when omitted.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			var position *big.Int
			if len(args) == 2 {
				if position, err = parseQuantity(args[1]); err != nil {
					return err
				}
			}

			data, err := client.StorageAt(cmd.Context(), addr, position, blockID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
			return err
		},
	}
	cmd.Flags().Var(&blockID, blockF, blockFlagUsage)
	return cmd
}

func methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the wrapped eth methods and their parameter counts.",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}
}

func listMethods(cmd *cobra.Command, _ []string) error {
	methods := eth.Methods()
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	slices.Sort(names)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Method", "Params"})
	for _, name := range names {
		table.Append([]string{name, strconv.Itoa(methods[name])})
	}
	table.Render()
	return nil
}

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call [METHOD] [PARAM]...",
		Short: "Send a raw JSON-RPC request to the endpoint.",
		Long:  "Params are decoded as JSON where possible and passed as strings otherwise.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  rawCall,
	}
}

func rawCall(cmd *cobra.Command, args []string) error {
	params := make([]any, len(args)-1)
	for i, arg := range args[1:] {
		var param any
		if err := json.Unmarshal([]byte(arg), &param); err != nil {
			param = arg
		}
		params[i] = param
	}

	var result json.RawMessage
	if err := caller.CallContext(cmd.Context(), &result, args[0], params...); err != nil {
		return err
	}
	return printJSON(cmd, result)
}
