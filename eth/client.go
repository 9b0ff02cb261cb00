// Package eth wraps the read-only account, block and transaction
// methods of the Ethereum JSON-RPC eth namespace with typed facades
// over a protocol-generic dispatcher.
package eth

import (
	"context"
	"math/big"

	"github.com/NethermindEth/ethrpc/jsonrpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const DefaultEndpoint = "http://localhost:8545"

// Caller dispatches a single JSON-RPC call. *jsonrpc.Client implements
// it; anything else that does, a recorded transport for instance, can
// stand in.
//
//go:generate mockgen -destination=./mocks/mock_caller.go -package=mocks github.com/NethermindEth/ethrpc/eth Caller
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

var _ Caller = (*jsonrpc.Client)(nil)

// Client exposes one facade per wrapped method. Each facade assembles
// the positional parameters in their documented order, delegates to the
// Caller and returns the typed result unchanged.
type Client struct {
	c Caller
}

func NewClient(c Caller) *Client {
	return &Client{c: c}
}

// Dial returns a client for the given endpoint, or for
// DefaultEndpoint when the endpoint is empty. For a customized
// transport, build the dispatcher explicitly and wrap it with
// NewClient.
func Dial(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return NewClient(jsonrpc.NewClient(endpoint))
}

// Coinbase returns the address the node's mining rewards are credited
// to.
func (c *Client) Coinbase(ctx context.Context) (common.Address, error) {
	var coinbase common.Address
	if err := c.c.CallContext(ctx, &coinbase, MethodCoinbase); err != nil {
		return common.Address{}, err
	}
	return coinbase, nil
}

// GasPrice returns the node's gas price estimate in wei.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	var price hexutil.Big
	if err := c.c.CallContext(ctx, &price, MethodGasPrice); err != nil {
		return nil, err
	}
	return (*big.Int)(&price), nil
}

// Accounts returns the addresses owned by the node.
func (c *Client) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.c.CallContext(ctx, &accounts, MethodAccounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// BlockNumber returns the height of the most recent block.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number hexutil.Uint64
	if err := c.c.CallContext(ctx, &number, MethodBlockNumber); err != nil {
		return 0, err
	}
	return uint64(number), nil
}

// Balance returns the wei balance of addr at the given block.
func (c *Client) Balance(ctx context.Context, addr common.Address, block BlockNumber) (*big.Int, error) {
	var balance hexutil.Big
	if err := c.c.CallContext(ctx, &balance, MethodGetBalance, addr, block); err != nil {
		return nil, err
	}
	return (*big.Int)(&balance), nil
}

// StorageAt returns the value stored at position pos of addr at the
// given block. A nil pos reads position zero.
func (c *Client) StorageAt(ctx context.Context, addr common.Address, pos *big.Int, block BlockNumber) ([]byte, error) {
	if pos == nil {
		pos = new(big.Int)
	}
	var data hexutil.Bytes
	if err := c.c.CallContext(ctx, &data, MethodGetStorageAt, addr, (*hexutil.Big)(pos), block); err != nil {
		return nil, err
	}
	return data, nil
}

// TransactionCount returns the number of transactions sent from addr up
// to the given block, which is the account's next nonce.
func (c *Client) TransactionCount(ctx context.Context, addr common.Address, block BlockNumber) (uint64, error) {
	var count hexutil.Uint64
	if err := c.c.CallContext(ctx, &count, MethodGetTransactionCount, addr, block); err != nil {
		return 0, err
	}
	return uint64(count), nil
}

// BlockTransactionCountByHash returns the number of transactions in the
// block with the given hash, or zero when the node does not know the
// block.
func (c *Client) BlockTransactionCountByHash(ctx context.Context, hash common.Hash) (uint64, error) {
	var count *hexutil.Uint64
	if err := c.c.CallContext(ctx, &count, MethodGetBlockTransactionCountByHash, hash); err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return uint64(*count), nil
}

// BlockTransactionCountByNumber returns the number of transactions in
// the selected block, or zero when the node does not have the block.
func (c *Client) BlockTransactionCountByNumber(ctx context.Context, block BlockNumber) (uint64, error) {
	var count *hexutil.Uint64
	if err := c.c.CallContext(ctx, &count, MethodGetBlockTransactionCountByNumber, block); err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return uint64(*count), nil
}

// Code returns the contract bytecode deployed at addr at the given
// block, empty for externally owned accounts.
func (c *Client) Code(ctx context.Context, addr common.Address, block BlockNumber) ([]byte, error) {
	var code hexutil.Bytes
	if err := c.c.CallContext(ctx, &code, MethodGetCode, addr, block); err != nil {
		return nil, err
	}
	return code, nil
}

// BlockByHash returns the block with the given hash, or nil when the
// node does not know it. With fullTxs the block carries complete
// transaction objects instead of hashes.
func (c *Client) BlockByHash(ctx context.Context, hash common.Hash, fullTxs bool) (*Block, error) {
	var block *Block
	if err := c.c.CallContext(ctx, &block, MethodGetBlockByHash, hash, fullTxs); err != nil {
		return nil, err
	}
	return block, nil
}

// BlockByNumber returns the selected block, or nil when the node does
// not have it. With fullTxs the block carries complete transaction
// objects instead of hashes.
func (c *Client) BlockByNumber(ctx context.Context, number BlockNumber, fullTxs bool) (*Block, error) {
	var block *Block
	if err := c.c.CallContext(ctx, &block, MethodGetBlockByNumber, number, fullTxs); err != nil {
		return nil, err
	}
	return block, nil
}

// TransactionByHash returns the transaction with the given hash, or nil
// when the node does not know it.
func (c *Client) TransactionByHash(ctx context.Context, hash common.Hash) (*Transaction, error) {
	var tx *Transaction
	if err := c.c.CallContext(ctx, &tx, MethodGetTransactionByHash, hash); err != nil {
		return nil, err
	}
	return tx, nil
}

// TransactionByBlockHashAndIndex returns the transaction at the given
// position of the block with the given hash, or nil when there is none.
// The zero index selects the block's first transaction.
func (c *Client) TransactionByBlockHashAndIndex(ctx context.Context, hash common.Hash, index uint64) (*Transaction, error) {
	var tx *Transaction
	if err := c.c.CallContext(ctx, &tx, MethodGetTransactionByBlockHashAndIndex, hash, hexutil.Uint64(index)); err != nil {
		return nil, err
	}
	return tx, nil
}

// TransactionByBlockNumberAndIndex returns the transaction at the given
// position of the selected block, or nil when there is none. The zero
// index selects the block's first transaction.
func (c *Client) TransactionByBlockNumberAndIndex(ctx context.Context, block BlockNumber, index uint64) (*Transaction, error) {
	var tx *Transaction
	if err := c.c.CallContext(ctx, &tx, MethodGetTransactionByBlockNumberAndIndex, block, hexutil.Uint64(index)); err != nil {
		return nil, err
	}
	return tx, nil
}

// TransactionReceipt returns the receipt of the transaction with the
// given hash, or nil while the transaction is pending or unknown.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	var receipt *Receipt
	if err := c.c.CallContext(ctx, &receipt, MethodGetTransactionReceipt, hash); err != nil {
		return nil, err
	}
	return receipt, nil
}
