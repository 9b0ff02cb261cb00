package eth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"testing"

	"github.com/NethermindEth/ethrpc/eth"
	"github.com/NethermindEth/ethrpc/eth/mocks"
	"github.com/NethermindEth/ethrpc/jsonrpc"
	"github.com/NethermindEth/ethrpc/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newWireClient returns a client whose server answers every call with
// the given result and records the request body it received.
func newWireClient(t *testing.T, result string, gotBody *string) *eth.Client {
	t.Helper()
	return eth.NewClient(jsonrpc.NewTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		*gotBody = string(body)
		_, err = fmt.Fprintf(w, `{"jsonrpc":"2.0","result":%s,"id":1}`, result)
		require.NoError(t, err)
	})))
}

func TestFacadeWireFormat(t *testing.T) {
	tests := map[string]struct {
		result   string
		wantBody string
		call     func(t *testing.T, c *eth.Client)
	}{
		eth.MethodCoinbase: {
			result:   `"0x407d73d8a49eeb85d32cf465507dd71d507100c1"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_coinbase","params":[],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.Coinbase(context.Background())
				require.NoError(t, err)
				assert.Equal(t, common.HexToAddress("0x407d73d8a49eeb85d32cf465507dd71d507100c1"), got)
			},
		},
		eth.MethodGasPrice: {
			result:   `"0x9184e72a000"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_gasPrice","params":[],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.GasPrice(context.Background())
				require.NoError(t, err)
				assert.Equal(t, big.NewInt(10000000000000), got)
			},
		},
		eth.MethodAccounts: {
			result:   `["0x407d73d8a49eeb85d32cf465507dd71d507100c1"]`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_accounts","params":[],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.Accounts(context.Background())
				require.NoError(t, err)
				assert.Equal(t, []common.Address{common.HexToAddress("0x407d73d8a49eeb85d32cf465507dd71d507100c1")}, got)
			},
		},
		eth.MethodBlockNumber: {
			result:   `"0x4b7"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_blockNumber","params":[],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.BlockNumber(context.Background())
				require.NoError(t, err)
				assert.Equal(t, uint64(1207), got)
			},
		},
		eth.MethodGetBalance: {
			result:   `"0x234c8a3397aab58"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getBalance","params":["0x407d73d8a49eeb85d32cf465507dd71d507100c1","latest"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.Balance(context.Background(), common.HexToAddress("0x407d73d8a49eeb85d32cf465507dd71d507100c1"), eth.Latest)
				require.NoError(t, err)
				assert.Equal(t, big.NewInt(158972490234375000), got)
			},
		},
		eth.MethodGetStorageAt: {
			result:   `"0x000000000000000000000000000000000000000000000000000000000000162e"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getStorageAt","params":["0x295a70b2de5e3953354a6a8344e616ed314d7251","0x0","latest"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.StorageAt(context.Background(), common.HexToAddress("0x295a70b2de5e3953354a6a8344e616ed314d7251"), nil, eth.Latest)
				require.NoError(t, err)
				assert.Equal(t, common.FromHex("0x000000000000000000000000000000000000000000000000000000000000162e"), got)
			},
		},
		eth.MethodGetTransactionCount: {
			result:   `"0x1"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getTransactionCount","params":["0xa7d9ddbe1f17865597fbd27ec712455208b6b76d","pending"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.TransactionCount(context.Background(), common.HexToAddress("0xa7d9ddbe1f17865597fbd27ec712455208b6b76d"), eth.Pending)
				require.NoError(t, err)
				assert.Equal(t, uint64(1), got)
			},
		},
		eth.MethodGetBlockTransactionCountByHash: {
			result:   `"0x1"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getBlockTransactionCountByHash","params":["0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.BlockTransactionCountByHash(context.Background(), common.HexToHash("0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220"))
				require.NoError(t, err)
				assert.Equal(t, uint64(1), got)
			},
		},
		eth.MethodGetBlockTransactionCountByNumber: {
			result:   `"0xa"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getBlockTransactionCountByNumber","params":["0xe8"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.BlockTransactionCountByNumber(context.Background(), eth.BlockNumber(232))
				require.NoError(t, err)
				assert.Equal(t, uint64(10), got)
			},
		},
		eth.MethodGetCode: {
			result:   `"0x6060604052600a8060106000396000f360606040526008565b00"`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getCode","params":["0xf02c1c8e6114b1dbe8937a39260b5b0a374432bb","0x2"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				got, err := c.Code(context.Background(), common.HexToAddress("0xf02c1c8e6114b1dbe8937a39260b5b0a374432bb"), eth.BlockNumber(2))
				require.NoError(t, err)
				assert.Equal(t, common.FromHex("0x6060604052600a8060106000396000f360606040526008565b00"), got)
			},
		},
		eth.MethodGetBlockByHash: {
			result:   mainnetBlockJSON,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getBlockByHash","params":["0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220",false],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				block, err := c.BlockByHash(context.Background(), common.HexToHash("0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220"), false)
				require.NoError(t, err)
				require.NotNil(t, block)
				assert.Equal(t, (*hexutil.Big)(big.NewInt(436)), block.Number)
				assert.Equal(t, 1, block.Transactions.Len())
			},
		},
		eth.MethodGetBlockByNumber: {
			result:   `{"number": "0x1b4", "gasUsed": "0x5208", "transactions": [` + legacyTxJSON + `]}`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getBlockByNumber","params":["0x1b4",true],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				block, err := c.BlockByNumber(context.Background(), eth.BlockNumber(436), true)
				require.NoError(t, err)
				require.NotNil(t, block)
				txs, full := block.Transactions.Full()
				require.True(t, full)
				require.Len(t, txs, 1)
			},
		},
		eth.MethodGetTransactionByHash: {
			result:   legacyTxJSON,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getTransactionByHash","params":["0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				tx, err := c.TransactionByHash(context.Background(), common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"))
				require.NoError(t, err)
				require.NotNil(t, tx)
				assert.Equal(t, common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"), tx.Hash)
			},
		},
		eth.MethodGetTransactionByBlockHashAndIndex: {
			result:   legacyTxJSON,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getTransactionByBlockHashAndIndex","params":["0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220","0x0"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				tx, err := c.TransactionByBlockHashAndIndex(context.Background(), common.HexToHash("0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220"), 0)
				require.NoError(t, err)
				require.NotNil(t, tx)
			},
		},
		eth.MethodGetTransactionByBlockNumberAndIndex: {
			result:   legacyTxJSON,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getTransactionByBlockNumberAndIndex","params":["earliest","0x2"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				tx, err := c.TransactionByBlockNumberAndIndex(context.Background(), eth.Earliest, 2)
				require.NoError(t, err)
				require.NotNil(t, tx)
			},
		},
		eth.MethodGetTransactionReceipt: {
			result: `{"transactionHash":"0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b",
				"transactionIndex":"0x0","blockHash":"0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220",
				"blockNumber":"0x1b4","from":"0xa7d9ddbe1f17865597fbd27ec712455208b6b76d",
				"to":"0xf02c1c8e6114b1dbe8937a39260b5b0a374432bb","cumulativeGasUsed":"0x33bc","gasUsed":"0x4dc",
				"contractAddress":null,"logs":[],"logsBloom":"0x00","status":"0x1"}`,
			wantBody: `{"jsonrpc":"2.0","method":"eth_getTransactionReceipt","params":["0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"],"id":1}`,
			call: func(t *testing.T, c *eth.Client) {
				receipt, err := c.TransactionReceipt(context.Background(), common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"))
				require.NoError(t, err)
				require.NotNil(t, receipt)
				assert.Equal(t, utils.HeapPtr(hexutil.Uint64(1)), receipt.Status)
				assert.Equal(t, hexutil.Uint64(0x4dc), receipt.GasUsed)
			},
		},
	}

	for method, test := range tests {
		t.Run(method, func(t *testing.T) {
			var gotBody string
			c := newWireClient(t, test.result, &gotBody)
			test.call(t, c)
			assert.Equal(t, test.wantBody, gotBody)
		})
	}

	t.Run("every wrapped method is exercised", func(t *testing.T) {
		for method, arity := range eth.Methods() {
			test, ok := tests[method]
			require.True(t, ok, "method %s has no wire test", method)

			var req struct {
				Params []any `json:"params"`
			}
			require.NoError(t, json.Unmarshal([]byte(test.wantBody), &req))
			assert.Len(t, req.Params, arity, "method %s", method)
		}
		assert.Len(t, tests, len(eth.Methods()))
	})
}

func TestStorageAtPosition(t *testing.T) {
	var gotBody string
	c := newWireClient(t, `"0x0000000000000000000000000000000000000000000000000000000000000003"`, &gotBody)

	_, err := c.StorageAt(context.Background(), common.HexToAddress("0x295a70b2de5e3953354a6a8344e616ed314d7251"), big.NewInt(1), eth.Pending)
	require.NoError(t, err)
	assert.Equal(t,
		`{"jsonrpc":"2.0","method":"eth_getStorageAt","params":["0x295a70b2de5e3953354a6a8344e616ed314d7251","0x1","pending"],"id":1}`,
		gotBody)
}

func TestNullResults(t *testing.T) {
	var gotBody string
	c := newWireClient(t, "null", &gotBody)
	hash := common.HexToHash("0x8faf8b77fedb23eb4d591433ac3643be1764209efa52ac6386e10d1a127e4220")

	t.Run("block by hash", func(t *testing.T) {
		block, err := c.BlockByHash(context.Background(), hash, false)
		require.NoError(t, err)
		assert.Nil(t, block)
	})
	t.Run("block by number", func(t *testing.T) {
		block, err := c.BlockByNumber(context.Background(), eth.BlockNumber(436), true)
		require.NoError(t, err)
		assert.Nil(t, block)
	})
	t.Run("transaction by hash", func(t *testing.T) {
		tx, err := c.TransactionByHash(context.Background(), hash)
		require.NoError(t, err)
		assert.Nil(t, tx)
	})
	t.Run("transaction by block and index", func(t *testing.T) {
		tx, err := c.TransactionByBlockHashAndIndex(context.Background(), hash, 7)
		require.NoError(t, err)
		assert.Nil(t, tx)
	})
	t.Run("receipt", func(t *testing.T) {
		receipt, err := c.TransactionReceipt(context.Background(), hash)
		require.NoError(t, err)
		assert.Nil(t, receipt)
	})
	t.Run("transaction count by unknown block", func(t *testing.T) {
		count, err := c.BlockTransactionCountByHash(context.Background(), hash)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestFacadeErrorPropagation(t *testing.T) {
	ctrl := gomock.NewController(t)
	caller := mocks.NewMockCaller(ctrl)
	client := eth.NewClient(caller)

	rpcErr := &jsonrpc.Error{Code: jsonrpc.MethodNotFound, Message: "the method does not exist/is not available"}

	caller.EXPECT().CallContext(gomock.Any(), gomock.Any(), eth.MethodGasPrice).Return(rpcErr)
	price, err := client.GasPrice(context.Background())
	assert.Same(t, rpcErr, err)
	assert.Nil(t, price)

	caller.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), eth.MethodGetTransactionCount, gomock.Any(), gomock.Any()).
		Return(rpcErr)
	count, err := client.TransactionCount(context.Background(), common.Address{}, eth.Latest)
	assert.Same(t, rpcErr, err)
	assert.Zero(t, count)

	caller.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), eth.MethodGetBlockByHash, gomock.Any(), gomock.Any()).
		Return(rpcErr)
	block, err := client.BlockByHash(context.Background(), common.Hash{}, true)
	assert.Same(t, rpcErr, err)
	assert.Nil(t, block)
}

func TestDial(t *testing.T) {
	require.NotNil(t, eth.Dial(""))
	require.NotNil(t, eth.Dial("http://localhost:8545"))
	assert.Equal(t, "http://localhost:8545", eth.DefaultEndpoint)
}
